package api

import (
	"context"
	"encoding/json"
	"errors"
	"html/template"
	"net/http"
	"strings"
	"time"

	"workgate/internal/domain"
	"workgate/internal/domain/model"
	"workgate/internal/infra/logging"
	"workgate/internal/infra/metrics"
	"workgate/internal/usecase"
)

type createOrderRequest struct {
	Role string `json:"role"`
}

type confirmRequest struct {
	OrderID       string `json:"orderId"`
	PaymentID     string `json:"paymentId"`
	Signature     string `json:"signature"`
	FirstName     string `json:"firstName"`
	LastName      string `json:"lastName"`
	Email         string `json:"email"`
	Phone         string `json:"phone"`
	Role          string `json:"role"`
	ReferenceCode string `json:"referenceCode,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

func (s *Server) handleCreateOrder(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 10*time.Second)
	defer cancel()

	var req createOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	order, err := s.orderUC.Create(ctx, model.Role(req.Role))
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInvalidRole):
			writeError(w, http.StatusBadRequest, "unknown role")
		default:
			// Gateway and input failures alike surface as a generic client
			// error; initiation touches no local state, so retry is safe.
			writeError(w, http.StatusBadRequest, "could not create order")
		}
		return
	}

	writeJSON(w, http.StatusOK, order)
}

func (s *Server) handleConfirm(w http.ResponseWriter, r *http.Request) {
	ctx, cancel := context.WithTimeout(r.Context(), 15*time.Second)
	defer cancel()
	start := time.Now()
	result, reason := "fail", "unknown"
	defer func() {
		metrics.ConfirmRequests.WithLabelValues(result, reason).Inc()
		metrics.ConfirmDuration.WithLabelValues(result).Observe(time.Since(start).Seconds())
	}()

	// Staged parsing: the payload is decoded and checked exactly once here.
	// Anything unparsable is rejected immediately and never reaches the
	// failed-transaction audit path.
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		reason = "bad_json"
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.OrderID == "" && req.PaymentID == "" && req.Signature == "" {
		reason = "missing_correlation"
		writeError(w, http.StatusBadRequest, "missing payment identifiers")
		return
	}
	if req.Email == "" {
		reason = "missing_email"
		writeError(w, http.StatusBadRequest, "email is required")
		return
	}

	ctx = logging.WithEmail(ctx, req.Email)
	user, err := s.checkoutUC.Confirm(ctx, &usecase.ConfirmRequest{
		OrderID:      req.OrderID,
		PaymentID:    req.PaymentID,
		Signature:    req.Signature,
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		Email:        req.Email,
		Phone:        req.Phone,
		Role:         model.Role(req.Role),
		ReferralCode: req.ReferenceCode,
	})
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrSignatureInvalid):
			reason = "bad_signature"
			writeError(w, http.StatusBadRequest, "invalid payment signature")
		case errors.Is(err, domain.ErrInvalidRole):
			reason = "bad_role"
			writeError(w, http.StatusBadRequest, "unknown role")
		case errors.Is(err, domain.ErrDuplicatePayment):
			reason = "duplicate"
			writeError(w, http.StatusBadRequest, "payment already recorded")
		case errors.Is(err, domain.ErrInvalidArgument):
			reason = "bad_input"
			writeError(w, http.StatusBadRequest, "invalid confirmation payload")
		default:
			reason = "persistence"
			writeError(w, http.StatusBadRequest, "could not confirm payment")
		}
		return
	}

	token, err := s.sessionUC.Establish(ctx, user)
	if err != nil {
		// The payment is committed; a session failure must not look like a
		// failed payment. The user can sign in through the regular flow.
		logging.With(ctx, s.log).Error().Err(err).Msg("session establishment failed after confirmed payment")
	} else {
		http.SetCookie(w, s.sessionCookie(token, s.session.TTL))
	}

	result, reason = "ok", ""
	writeJSON(w, http.StatusOK, map[string]string{
		"status":   "success",
		"redirect": s.redirect,
	})
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	if c, err := r.Cookie(s.session.CookieName); err == nil {
		if err := s.sessionUC.Logout(r.Context(), c.Value); err != nil {
			logging.With(r.Context(), s.log).Warn().Err(err).Msg("session revocation failed")
		}
	}
	http.SetCookie(w, s.sessionCookie("", -time.Hour))
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionCookie(value string, ttl time.Duration) *http.Cookie {
	return &http.Cookie{
		Name:     s.session.CookieName,
		Value:    value,
		Path:     "/",
		Domain:   s.session.CookieDomain,
		MaxAge:   int(ttl / time.Second),
		HttpOnly: true,
		Secure:   s.session.Secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	users, paid, err := s.statsUC.Totals(ctx)
	if err != nil {
		http.Error(w, "Failed to get totals", http.StatusInternalServerError)
		return
	}

	week, month, year, err := s.statsUC.Revenue(ctx)
	if err != nil {
		http.Error(w, "Failed to get revenue", http.StatusInternalServerError)
		return
	}

	response := struct {
		TotalUsers int `json:"total_users"`
		PaidUsers  int `json:"paid_users"`
		Revenue    struct {
			Week  int64 `json:"week"`
			Month int64 `json:"month"`
			Year  int64 `json:"year"`
		} `json:"revenue_paise"`
	}{
		TotalUsers: users,
		PaidUsers:  paid,
	}
	response.Revenue.Week = week
	response.Revenue.Month = month
	response.Revenue.Year = year

	writeJSON(w, http.StatusOK, response)
}

// opsAuth provides simple Bearer token authentication for the ops API.
func (s *Server) opsAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.opsKey == "" {
			s.log.Error().Msg("Ops API key is not configured")
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
			return
		}

		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || strings.ToLower(tokenParts[0]) != "bearer" {
			http.Error(w, "Unauthorized: Malformed token", http.StatusUnauthorized)
			return
		}

		if tokenParts[1] != s.opsKey {
			http.Error(w, "Forbidden", http.StatusForbidden)
			return
		}

		next.ServeHTTP(w, r)
	})
}

var resultPage = template.Must(template.New("result").Parse(`<!doctype html>
<html lang="en">
<head>
<meta charset="utf-8" />
<meta name="viewport" content="width=device-width,initial-scale=1" />
<title>Payment {{if .OK}}Successful{{else}}Failed{{end}}</title>
<style>
body{font-family:system-ui,Arial,sans-serif;margin:2rem;}
.card{max-width:560px;border:1px solid #ddd;border-radius:12px;padding:24px;}
.ok{color:#057a55} .fail{color:#b00020}
.btn{display:inline-block;margin-top:16px;padding:10px 16px;border-radius:8px;border:1px solid #888;text-decoration:none}
</style>
</head>
<body>
<div class="card">
  <h2 class="{{if .OK}}ok{{else}}fail{{end}}">{{if .OK}}Payment Successful{{else}}Payment Failed{{end}}</h2>
  <p>{{.Msg}}</p>
  <a class="btn" href="/">Back to home</a>
</div>
</body>
</html>`))

func (s *Server) handleResultPage(ok bool) http.HandlerFunc {
	msg := "Your payment has been processed and your account is ready."
	if !ok {
		msg = "Your payment could not be processed. Please try again."
	}
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_ = resultPage.Execute(w, struct {
			OK  bool
			Msg string
		}{OK: ok, Msg: msg})
	}
}
