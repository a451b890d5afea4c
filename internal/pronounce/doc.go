// Package pronounce calls the external pronunciation-scoring service.
//
// The core only depends on the Scorer interface; Client is the HTTP
// implementation. Exactly one request is made per new recording, with no
// retries — a failed call is captured as data on the metrics report, never
// propagated into the objective metrics.
package pronounce
