// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package middleware provides a fiber middleware logging every request through
// a Logger tagged with the request id.
package middleware
