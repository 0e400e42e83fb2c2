// Copyright (C) 2025 TripFix Technologies (legal@tripfix.io)
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU Affero General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
// See the LICENSE.txt file for the full license text.

package datatypes

import "errors"

// Validation errors returned by request Validate methods. Handlers map
// these to 400 responses.
var (
	ErrNotesTooLarge       = errors.New("passenger notes exceed maximum size")
	ErrHistoryTooLong      = errors.New("conversation history exceeds maximum turn count")
	ErrTurnTooLarge        = errors.New("conversation turn content exceeds maximum size")
	ErrUnknownJurisdiction = errors.New("jurisdiction must be APPR, EU261, or NEITHER")
)
