package logging

import "testing"

func TestMaskFieldRedactsUnlistedKeys(t *testing.T) {
	attr := MaskField("admin_jwt_secret", "super-secret")
	if attr.Value.String() != RedactedValue {
		t.Fatalf("expected redaction, got %q", attr.Value.String())
	}
}

func TestMaskFieldPassesAllowlistedKeys(t *testing.T) {
	attr := MaskField("contract", "Treasury")
	if attr.Value.String() != "Treasury" {
		t.Fatalf("expected unredacted value, got %q", attr.Value.String())
	}
}

func TestMaskFieldLeavesEmptyValuesAlone(t *testing.T) {
	attr := MaskField("admin_jwt_secret", "")
	if attr.Value.String() != "" {
		t.Fatalf("expected empty value to pass through, got %q", attr.Value.String())
	}
}
