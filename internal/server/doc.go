// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package server contains the HTTP service started by the serve command.
// It sets up a Fiber application that logs every request through the logger
// middleware, exposes the status routes and accepts records to emit.
package server
