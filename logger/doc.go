// Copyright Mia srl
// SPDX-License-Identifier: AGPL-3.0-only or Commercial

// Package logger is a thin structured logging facade. A Logger configures a
// process wide Backend (zap, hclog or logrus) together with the standard library
// log packages, and tags every record it emits with a uuid field identifying it.
//
//	log, err := logger.New(logger.WithLevel(logger.INFO), logger.WithUUID("abc-123"))
//	if err != nil {
//		return err
//	}
//	log.Info("started", "port", 8080) // port=8080 uuid=abc-123
//
// Records go through an ordered processor chain before rendering; see
// DefaultProcessors. The configuration is global: constructing a Logger replaces
// it for every other Logger sharing the same Backend.
package logger
