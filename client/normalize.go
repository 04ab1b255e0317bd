package client

import (
	"encoding/json"

	"github.com/Jathol7/oz-baby-toys-store/models"
)

// AuthPayload is the normalized result of a login or register response.
type AuthPayload struct {
	User  models.User
	Token string
}

// ParseError means a response decoded as JSON but did not contain the
// expected fields under any recognized shape.
type ParseError struct {
	Reason string
}

func (e *ParseError) Error() string { return "auth response: " + e.Reason }

// authFields are the token/user spellings the backend has been observed to
// use at the top level or nested under "data".
type authFields struct {
	Token       string       `json:"token"`
	AccessToken string       `json:"access_token"`
	User        *models.User `json:"user"`
}

// ParseAuthResponse normalizes the several response shapes the backend uses
// for POST /login and POST /register. Priority order, first match wins:
//
//	token: data.token, data.access_token, token, access_token
//	user:  data.user, user, data itself (when it carries an id or email)
//
// A response with no token under any shape is a *ParseError; a missing user
// yields a zero User but is not an error (the profile can be fetched later).
func ParseAuthResponse(raw []byte) (AuthPayload, error) {
	var top struct {
		authFields
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(raw, &top); err != nil {
		return AuthPayload{}, &ParseError{Reason: "body is not JSON"}
	}

	var nested authFields
	if len(top.Data) > 0 {
		// data may legitimately fail to decode as authFields when it is the
		// bare user object; that case is handled below.
		_ = json.Unmarshal(top.Data, &nested)
	}

	var payload AuthPayload
	for _, tok := range []string{nested.Token, nested.AccessToken, top.Token, top.AccessToken} {
		if tok != "" {
			payload.Token = tok
			break
		}
	}
	if payload.Token == "" {
		return AuthPayload{}, &ParseError{Reason: "no token received from server"}
	}

	switch {
	case nested.User != nil:
		payload.User = *nested.User
	case top.User != nil:
		payload.User = *top.User
	case len(top.Data) > 0:
		var u models.User
		if err := json.Unmarshal(top.Data, &u); err == nil && (u.ID != 0 || u.Email != "") {
			payload.User = u
		}
	}
	return payload, nil
}
