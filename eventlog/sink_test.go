package eventlog

import (
	"testing"

	"github.com/stretchr/testify/require"

	"orbit/core/events"
	"orbit/crypto"
)

func addr(b byte) crypto.Address {
	return crypto.MustNewAddress(crypto.OrbitPrefix, []byte{b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b, b})
}

func TestSinkPersistsEmittedEvents(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)

	sink, err := NewSink(db, nil)
	require.NoError(t, err)

	sink.Emit(events.SetPegkeeper{Pegkeeper: addr(1)})

	var records []Record
	require.NoError(t, db.Find(&records).Error)
	require.Len(t, records, 1)
	require.Equal(t, "Treasury", records[0].Contract)
	require.Equal(t, "set_pegkeeper", records[0].Symbol)
	require.Equal(t, "treasury.set_pegkeeper", records[0].EventType)
	require.Contains(t, records[0].Payload, "Pegkeeper")
}

func TestSinkRecordsMultipleEventsInOrder(t *testing.T) {
	db, err := OpenSQLite(":memory:")
	require.NoError(t, err)
	sink, err := NewSink(db, nil)
	require.NoError(t, err)

	sink.Emit(events.Initialize{Contract: "Treasury", Admin: addr(1)})
	sink.Emit(events.SetAdmin{Contract: "Treasury", Admin: addr(2)})

	var records []Record
	require.NoError(t, db.Order("created_at").Find(&records).Error)
	require.Len(t, records, 2)
	require.Equal(t, "initialize", records[0].Symbol)
	require.Equal(t, "set_admin", records[1].Symbol)
}
