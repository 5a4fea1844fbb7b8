package api

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/slice-arcade/internal/reward"
	"github.com/vovakirdan/slice-arcade/internal/wallet"
)

// NonceResponse is returned by /api/get-nonce.
type NonceResponse struct {
	Success   bool   `json:"success"`
	Nonce     string `json:"nonce"`
	ExpiresIn int64  `json:"expiresIn"` // milliseconds
}

// VerifyRequest is the body of /api/verify-wallet.
type VerifyRequest struct {
	Signature string `json:"signature"`
	PublicKey string `json:"publicKey"`
	Message   string `json:"message"`
	Nonce     string `json:"nonce"`
}

// VerifyResponse carries the session token.
type VerifyResponse struct {
	Success   bool      `json:"success"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// TransferRequest is the body of /api/transfer-tokens.
type TransferRequest struct {
	PlayerAddress string `json:"playerAddress"`
	Score         int    `json:"score"`
}

// TransferResponse describes a completed payout.
type TransferResponse struct {
	Success   bool            `json:"success"`
	Signature string          `json:"signature"`
	Amount    decimal.Decimal `json:"amount"`
	BaseUnits decimal.Decimal `json:"baseUnits"`
	Bonus     bool            `json:"bonus"`
	Message   string          `json:"message"`
}

// FundRequest is the body of /api/fund.
type FundRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// BalanceResponse reports a player balance.
type BalanceResponse struct {
	Success bool            `json:"success"`
	Balance decimal.Decimal `json:"balance"`
}

func (s *Server) handleGetNonce(w http.ResponseWriter, _ *http.Request) {
	nonce, err := s.auth.IssueNonce()
	if err != nil {
		writeFailure(w, "Failed to generate nonce", err)
		return
	}
	writeJSON(w, http.StatusOK, NonceResponse{
		Success:   true,
		Nonce:     nonce,
		ExpiresIn: s.auth.NonceTTL().Milliseconds(),
	})
}

func (s *Server) handleVerifyWallet(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}

	login, err := s.auth.Verify(req.PublicKey, req.Message, req.Signature, req.Nonce)
	switch {
	case errors.Is(err, wallet.ErrMissingParam):
		writeError(w, http.StatusBadRequest, "Missing required parameters")
		return
	case errors.Is(err, wallet.ErrNonceInvalid):
		writeError(w, http.StatusBadRequest, "Invalid nonce")
		return
	case errors.Is(err, wallet.ErrNonceExpired):
		writeError(w, http.StatusBadRequest, "Nonce expired")
		return
	case errors.Is(err, wallet.ErrNonceUsed):
		writeError(w, http.StatusBadRequest, "Nonce already used")
		return
	case errors.Is(err, wallet.ErrBadSignature):
		writeError(w, http.StatusUnauthorized, "Invalid signature")
		return
	case err != nil:
		writeFailure(w, "Failed to verify wallet", err)
		return
	}

	if _, err := s.ledger.Connect(r.Context(), login.Player); err != nil {
		writeFailure(w, "Failed to verify wallet", err)
		return
	}

	writeJSON(w, http.StatusOK, VerifyResponse{Success: true, Token: login.Token, ExpiresAt: login.Expires})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	bal, err := s.ledger.Balance(r.Context(), playerFrom(r.Context()))
	if err != nil {
		s.writeWalletError(w, "Failed to read balance", err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{Success: true, Balance: bal})
}

func (s *Server) handleFund(w http.ResponseWriter, r *http.Request) {
	var req FundRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if !req.Amount.IsPositive() {
		writeError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}

	bal, err := s.ledger.Fund(r.Context(), playerFrom(r.Context()), req.Amount)
	if err != nil {
		s.writeWalletError(w, "Failed to add balance", err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{Success: true, Balance: bal})
}

func (s *Server) handlePayEntry(w http.ResponseWriter, r *http.Request) {
	player := playerFrom(r.Context())
	if err := s.ledger.PayEntry(r.Context(), player); err != nil {
		s.writeWalletError(w, "Failed to pay entry fee", err)
		return
	}

	bal, err := s.ledger.Balance(r.Context(), player)
	if err != nil {
		s.writeWalletError(w, "Failed to read balance", err)
		return
	}
	writeJSON(w, http.StatusOK, BalanceResponse{Success: true, Balance: bal})
}

func (s *Server) writeWalletError(w http.ResponseWriter, message string, err error) {
	switch {
	case errors.Is(err, wallet.ErrUnauthorized):
		writeError(w, http.StatusUnauthorized, "Unauthorized - Wallet not connected")
	case errors.Is(err, wallet.ErrInsufficientBalance):
		writeError(w, http.StatusBadRequest, "Insufficient balance")
	default:
		writeFailure(w, message, err)
	}
}

func (s *Server) handleTransferTokens(w http.ResponseWriter, r *http.Request) {
	var req TransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if req.PlayerAddress == "" || req.Score <= 0 {
		writeError(w, http.StatusBadRequest, "Missing required parameters")
		return
	}
	if req.PlayerAddress != playerFrom(r.Context()) {
		writeError(w, http.StatusForbidden, "Player does not match session")
		return
	}

	receipt, err := s.rewards.Transfer(r.Context(), req.PlayerAddress, req.Score)
	switch {
	case errors.Is(err, reward.ErrScoreTooLow):
		writeError(w, http.StatusBadRequest, "Score too low to receive rewards")
		return
	case errors.Is(err, reward.ErrInsufficientFunds):
		writeError(w, http.StatusBadRequest, "Insufficient funds in house wallet")
		return
	case err != nil:
		s.logger.Error("transfer failed", "player", req.PlayerAddress, "score", req.Score, "err", err)
		writeFailure(w, "Failed to transfer tokens", err)
		return
	}

	writeJSON(w, http.StatusOK, TransferResponse{
		Success:   true,
		Signature: receipt.ID,
		Amount:    receipt.Amount,
		BaseUnits: receipt.BaseUnits,
		Bonus:     receipt.Bonus,
		Message:   fmt.Sprintf("Successfully transferred %s tokens to %s", receipt.Amount, req.PlayerAddress),
	})
}
