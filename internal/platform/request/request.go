// Copyright (c) 2026 Open Reader. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package request provides utilities for extracting data from HTTP requests.

It abstracts away the underlying router's parameter extraction and common
body decoding patterns, ensuring consistent error handling and type safety.
*/
package requestutil

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/openreader/storefront/internal/platform/apperr"
	"github.com/openreader/storefront/internal/platform/ctxutil"
	"github.com/openreader/storefront/internal/platform/sec"
	"github.com/openreader/storefront/internal/platform/validate"
	"github.com/openreader/storefront/pkg/query"
)

// maxBodyBytes bounds JSON payloads. Proposal uploads carry base64 file
// content, so the bound sits above the 25 MiB file limit plus encoding overhead.
const maxBodyBytes = 36 << 20

/*
DecodeJSON reads the request body and decodes it into the target structure.

Parameters:
  - request: *http.Request
  - target: any (Pointer to the destination struct)

Returns:
  - error: validate.ErrInvalidJSON if decoding fails, otherwise nil
*/
func DecodeJSON(request *http.Request, target any) error {
	body := http.MaxBytesReader(nil, request.Body, maxBodyBytes)
	if err := json.NewDecoder(body).Decode(target); err != nil {
		return validate.ErrInvalidJSON
	}
	return nil
}

/*
DecodeAndValidate decodes a JSON body and runs its struct-tag rules.
*/
func DecodeAndValidate(request *http.Request, target any) error {
	if err := DecodeJSON(request, target); err != nil {
		return err
	}
	return validate.Struct(target)
}

/*
Param retrieves a named URL parameter from the request.
*/
func Param(request *http.Request, name string) string {
	return chi.URLParam(request, name)
}

/*
QueryInt parses an optional integer query parameter.

Returns:
  - *int: nil when the parameter is absent
  - error: VALIDATION_ERROR when present but not an integer
*/
func QueryInt(request *http.Request, name string) (*int, error) {
	raw := strings.TrimSpace(request.URL.Query().Get(name))
	if raw == "" {
		return nil, nil
	}

	value, err := strconv.Atoi(raw)
	if err != nil {
		return nil, validate.RequiredError(name, "Must be an integer")
	}

	return &value, nil
}

/*
QueryStrings collects a multi-valued query parameter.

Both repeated keys (?tags=a&tags=b) and comma-separated values (?tags=a,b)
are accepted; blanks are dropped.
*/
func QueryStrings(request *http.Request, name string) []string {
	var values []string
	for _, raw := range request.URL.Query()[name] {
		values = append(values, query.StringSlice(raw)...)
	}
	return values
}

/*
RequiredVoter returns the verified voter claims of the current request.

Returns:
  - *sec.VoterClaims: The authenticated voter
  - error: apperr.Unauthorized if no valid voter token was presented
*/
func RequiredVoter(request *http.Request) (*sec.VoterClaims, error) {
	claims := ctxutil.GetVoter(request.Context())
	if claims == nil {
		return nil, apperr.Unauthorized("Voter token required")
	}
	return claims, nil
}
