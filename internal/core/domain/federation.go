package domain

import "net/url"

// FailureReason enumerates the ways a federated login can end without a token.
// The value is what the front end receives in the error query parameter.
type FailureReason string

const (
	FailureNoEmail    FailureReason = "no_email"
	FailureFederation FailureReason = "federation_failed"
)

// FederationResult is the terminal state of one login attempt: either a
// local bearer token or a failure reason, never both.
type FederationResult struct {
	Token  string
	Reason FailureReason
}

func FederationSucceeded(token string) FederationResult {
	return FederationResult{Token: token}
}

func FederationFailed(reason FailureReason) FederationResult {
	return FederationResult{Reason: reason}
}

// OK reports whether the attempt produced a token.
func (r FederationResult) OK() bool {
	return r.Reason == "" && r.Token != ""
}

// RedirectURL appends token=<token> or error=<code> to the front-end base URL,
// keeping any query parameters base already has.
func (r FederationResult) RedirectURL(base string) string {
	u, err := url.Parse(base)
	if err != nil {
		u = &url.URL{Path: "/"}
	}
	q := u.Query()
	if r.OK() {
		q.Set("token", r.Token)
	} else {
		reason := r.Reason
		if reason == "" {
			reason = FailureFederation
		}
		q.Set("error", string(reason))
	}
	u.RawQuery = q.Encode()
	return u.String()
}
