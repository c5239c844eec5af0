package main

import (
	"math/big"
	"net/http"

	"orbit/config"
	orbiterrors "orbit/core/errors"
	"orbit/core/types"
	"orbit/crypto"
)

// writeEngineError maps a contract error to an HTTP status using its stable
// Code(), falling back to 500 for anything uncoded (a programmer error, not
// a rejected call).
func writeEngineError(w http.ResponseWriter, err error) {
	code, ok := orbiterrors.Code(err)
	if !ok {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	status := http.StatusBadRequest
	switch code {
	case "unauthorized":
		status = http.StatusForbidden
	case "already_initialized", "already_added":
		status = http.StatusConflict
	case "blend_pool_not_found", "invalid_blend_pool":
		status = http.StatusNotFound
	}
	writeJSON(w, status, errorResponse{Error: code})
}

func parseAddress(w http.ResponseWriter, raw string) (crypto.Address, bool) {
	addr, err := crypto.DecodeAddress(raw)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid address: "+err.Error())
		return crypto.Address{}, false
	}
	return addr, true
}

func parseAmount(w http.ResponseWriter, raw string) (*big.Int, bool) {
	amount, ok := new(big.Int).SetString(raw, 10)
	if !ok {
		writeError(w, http.StatusBadRequest, "invalid amount")
		return nil, false
	}
	return amount, true
}

// --- Treasury -------------------------------------------------------------
//
// IncreaseSupply, DecreaseSupply, and Claim are all admin-gated on Treasury's
// own requireAdmin, and Treasury's registered admin is the Admin façade's
// address (see app.bootstrap), not any key an HTTP caller could hold. Supply
// and withdraw are therefore exposed through the façade's UpdateSupply
// (positive amount to mint, negative to burn) rather than calling Treasury
// directly. Claim has no façade-forwarding counterpart in native/admin, so
// orbitd performs it itself on the JWT-authenticated operator's behalf,
// using the façade's own address as the contract-level caller — the same
// trust boundary UpdateSupply crosses, just without an intermediate
// native/admin method to name it.

type callerTokenAmountRequest struct {
	Caller string `json:"caller"`
	Token  string `json:"token"`
	Amount string `json:"amount"`
}

func (s *server) handleSupply(w http.ResponseWriter, r *http.Request) {
	var req callerTokenAmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	token, ok := parseAddress(w, req.Token)
	if !ok {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.UpdateSupply(caller, token, amount)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *server) handleWithdraw(w http.ResponseWriter, r *http.Request) {
	var req callerTokenAmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	token, ok := parseAddress(w, req.Token)
	if !ok {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.UpdateSupply(caller, token, new(big.Int).Neg(amount))
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

type claimRequest struct {
	Caller string `json:"caller"`
	Token  string `json:"token"`
	To     string `json:"to"`
}

func (s *server) handleClaim(w http.ResponseWriter, r *http.Request) {
	var req claimRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	// req.Caller is the JWT-authenticated operator for audit purposes only;
	// Treasury.Claim is invoked as the Admin façade, matching how every other
	// Treasury mutation reaches it.
	if _, ok := parseAddress(w, req.Caller); !ok {
		return
	}
	token, ok := parseAddress(w, req.Token)
	if !ok {
		return
	}
	to, ok := parseAddress(w, req.To)
	if !ok {
		return
	}
	var interest *big.Int
	err := s.app.withFrame(func() error {
		var callErr error
		interest, callErr = s.app.treasury.Claim(s.app.self.admin, token, to)
		return callErr
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"interest": interest.String()})
}

// keepPegRequest mirrors the (fn_name, args) dispatch shape Treasury.keep_peg
// forwards to PegKeeper: the first three args are always token/amount/pool,
// the rest are handler-specific (fl_receive's seven remaining positional
// parameters here). Unknown handlers are rejected by the engine itself.
type keepPegRequest struct {
	FnName          string `json:"fn_name"`
	Token           string `json:"token"`
	Amount          string `json:"amount"`
	Pool            string `json:"pool"`
	Auction         string `json:"auction,omitempty"`
	CollateralToken string `json:"collateral_token,omitempty"`
	LotAmount       string `json:"lot_amount,omitempty"`
	LiqAmountPct    uint32 `json:"liq_amount_pct,omitempty"`
	AMM             string `json:"amm,omitempty"`
	MinProfit       string `json:"min_profit,omitempty"`
	FeeTaker        string `json:"fee_taker,omitempty"`
}

func (s *server) handleKeepPeg(w http.ResponseWriter, r *http.Request) {
	var req keepPegRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, ok := parseAddress(w, req.Token)
	if !ok {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	pool, ok := parseAddress(w, req.Pool)
	if !ok {
		return
	}

	args := []any{token, amount, pool}
	if req.FnName == "fl_receive" {
		auction, ok := parseAddress(w, req.Auction)
		if !ok {
			return
		}
		collateralToken, ok := parseAddress(w, req.CollateralToken)
		if !ok {
			return
		}
		lotAmount, ok := parseAmount(w, req.LotAmount)
		if !ok {
			return
		}
		amm, ok := parseAddress(w, req.AMM)
		if !ok {
			return
		}
		minProfit, ok := parseAmount(w, req.MinProfit)
		if !ok {
			return
		}
		feeTaker, ok := parseAddress(w, req.FeeTaker)
		if !ok {
			return
		}
		args = append(args, auction, collateralToken, lotAmount, req.LiqAmountPct, amm, minProfit, feeTaker)
	}

	var profit *big.Int
	err := s.app.withFrame(func() error {
		var callErr error
		profit, callErr = s.app.treasury.KeepPeg(req.FnName, args)
		return callErr
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"profit": profit.String()})
}

type setAddressRequest struct {
	Caller string `json:"caller"`
	Target string `json:"target"`
}

// --- PegKeeper --------------------------------------------------------------
//
// Unlike Treasury and BridgeOracle, PegKeeper is not owned by the Admin
// façade — nothing forwards into it on an operator's behalf — so its own
// requireAdmin checks the JWT-authenticated operator's real key directly.

func (s *server) handlePegkeeperSetTreasury(w http.ResponseWriter, r *http.Request) {
	var req setAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	target, ok := parseAddress(w, req.Target)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.pegkeeper.SetTreasury(caller, target)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *server) handlePegkeeperSetAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	target, ok := parseAddress(w, req.Target)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.pegkeeper.SetAdmin(caller, target)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// --- BridgeOracle -----------------------------------------------------------
//
// AddAsset, SetOracle, and SetAdmin are admin-gated the same way Treasury's
// mutations are: BridgeOracle's registered admin is the Admin façade's
// address, so AddAsset is reachable only through /v1/admin/new_stablecoin
// (which adds the bridge's pegged-asset descriptor as a side effect of
// onboarding), SetOracle only through /v1/admin/update_oracle, and
// BridgeOracle.SetAdmin through no route at all — there is no direct
// /v1/bridgeoracle equivalent. Decimals and LastPrice are plain reads with
// no admin gate and stay open here.

func (s *server) handleOracleDecimals(w http.ResponseWriter, r *http.Request) {
	var decimals uint32
	err := s.app.withFrame(func() error {
		var callErr error
		decimals, callErr = s.app.bridgeOracle.Decimals()
		return callErr
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]uint32{"decimals": decimals})
}

func (s *server) handleOracleLastPrice(w http.ResponseWriter, r *http.Request) {
	asset, err := assetFromQuery(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	var price *types.PriceData
	callErr := s.app.withFrame(func() error {
		var inner error
		price, inner = s.app.bridgeOracle.LastPrice(asset)
		return inner
	})
	if callErr != nil {
		writeEngineError(w, callErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"price":     price.Price.String(),
		"timestamp": price.Timestamp,
	})
}

func assetFromQuery(r *http.Request) (types.Asset, error) {
	if r.URL.Query().Get("usd") == "true" {
		return types.USD(), nil
	}
	addr, err := crypto.DecodeAddress(r.URL.Query().Get("onchain"))
	if err != nil {
		return types.Asset{}, err
	}
	return types.NewOnchainAsset(addr), nil
}

// --- Admin façade -----------------------------------------------------------

type newStablecoinRequest struct {
	Caller        string `json:"caller"`
	Token         string `json:"token"`
	PeggedTo      string `json:"pegged_to"`
	BlendPool     string `json:"blend_pool"`
	InitialSupply string `json:"initial_supply"`
}

func (s *server) handleAdminNewStablecoin(w http.ResponseWriter, r *http.Request) {
	var req newStablecoinRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	token, ok := parseAddress(w, req.Token)
	if !ok {
		return
	}
	pool, ok := parseAddress(w, req.BlendPool)
	if !ok {
		return
	}
	peggedTo, err := parseAssetDescriptor(req.PeggedTo)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	initialSupply, ok := parseAmount(w, req.InitialSupply)
	if !ok {
		return
	}
	callErr := s.app.withFrame(func() error {
		return s.app.admin.NewStablecoin(caller, token, peggedTo, pool, initialSupply)
	})
	if callErr != nil {
		writeEngineError(w, callErr)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *server) handleAdminUpdatePegkeeper(w http.ResponseWriter, r *http.Request) {
	var req setAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	target, ok := parseAddress(w, req.Target)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.UpdatePegkeeper(caller, target)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *server) handleAdminUpdateOracle(w http.ResponseWriter, r *http.Request) {
	var req setAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	target, ok := parseAddress(w, req.Target)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.UpdateOracle(caller, target)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *server) handleAdminUpdateSupply(w http.ResponseWriter, r *http.Request) {
	var req callerTokenAmountRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	token, ok := parseAddress(w, req.Token)
	if !ok {
		return
	}
	amount, ok := parseAmount(w, req.Amount)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.UpdateSupply(caller, token, amount)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

type updatePoolRequest struct {
	Caller           string `json:"caller"`
	Pool             string `json:"pool"`
	BackstopTakeRate uint32 `json:"backstop_take_rate"`
	MaxPositions     uint32 `json:"max_positions"`
}

func (s *server) handleAdminUpdatePool(w http.ResponseWriter, r *http.Request) {
	var req updatePoolRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	pool, ok := parseAddress(w, req.Pool)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.UpdatePool(caller, pool, req.BackstopTakeRate, req.MaxPositions)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

type setStatusRequest struct {
	Caller string `json:"caller"`
	Pool   string `json:"pool"`
	Status uint32 `json:"status"`
}

func (s *server) handleAdminSetStatus(w http.ResponseWriter, r *http.Request) {
	var req setStatusRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	pool, ok := parseAddress(w, req.Pool)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.SetStatus(caller, pool, req.Status)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

func (s *server) handleAdminSetAdmin(w http.ResponseWriter, r *http.Request) {
	var req setAddressRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	caller, ok := parseAddress(w, req.Caller)
	if !ok {
		return
	}
	target, ok := parseAddress(w, req.Target)
	if !ok {
		return
	}
	err := s.app.withFrame(func() error {
		return s.app.admin.SetAdmin(caller, target)
	})
	if err != nil {
		writeEngineError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "accepted"})
}

// handleAdminIssueToken mints an admin bearer token for a named operator
// subject. It has no contract-side counterpart — it is purely the HTTP
// boundary's own login operation, standing in for the out-of-band key
// ceremony that would hand an operator their credential in a real
// deployment.
type issueTokenRequest struct {
	Subject string `json:"subject"`
}

func (s *server) handleAdminIssueToken(w http.ResponseWriter, r *http.Request) {
	var req issueTokenRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	token, err := s.auth.issue(req.Subject)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func parseAssetDescriptor(raw string) (types.Asset, error) {
	return config.ParseAsset(raw)
}
