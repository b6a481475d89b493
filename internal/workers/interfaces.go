// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package workers runs periodic background jobs next to the HTTP server.
// It defines the Worker interface and a Workers aggregate that starts all
// workers together and waits for them to stop.
package workers

import "context"

// Worker is a background job. Run blocks until ctx is cancelled.
type Worker interface {
	Run(ctx context.Context)
}
