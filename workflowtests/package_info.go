// Package workflowtests implements the scripted MediaHub verification
// scenario: bring the server into a known state, drive it through user
// administration, database creation, entry upload/download, and permission
// revocation, asserting the outcome of every step, and tear down every
// resource the run created no matter how far it got.
//
// The stages build on the generic framework package for sequencing and
// reporting, and on the client package for authenticated API calls. Stage
// functions make assertions with the assert and require packages, passing
// the *T as if it were a *testing.T.
package workflowtests
