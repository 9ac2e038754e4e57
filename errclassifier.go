// SPDX-License-Identifier: GPL-3.0-or-later

package mcwire

import "github.com/bassosimone/errclass"

// ErrClassifier classifies errors into categorical strings for analysis.
//
// Implementations map errors to short, descriptive labels (e.g., "ETIMEDOUT",
// "ECONNRESET") that facilitate systematic analysis of ping results: a server
// that refuses connections and a server that times out both yield a nil
// response to the caller, but their log events stay distinguishable.
type ErrClassifier interface {
	Classify(err error) string
}

// ErrClassifierFunc adapts a function to the [ErrClassifier] interface.
//
// This allows using simple functions as classifiers:
//
//	op.ErrClassifier = ErrClassifierFunc(errclass.New)
type ErrClassifierFunc func(error) string

var _ ErrClassifier = ErrClassifierFunc(nil)

// Classify implements [ErrClassifier].
func (f ErrClassifierFunc) Classify(err error) string {
	return f(err)
}

// DefaultErrClassifier classifies errors using [errclass.New] and maps
// the nil error to the empty string.
var DefaultErrClassifier = ErrClassifierFunc(func(err error) string {
	if err == nil {
		return ""
	}
	return errclass.New(err)
})
