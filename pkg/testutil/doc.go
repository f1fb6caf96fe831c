// Package testutil provides fixtures shared by mcsi's package tests.
//
// Key components:
//   - MockCatalog: testify mock of types.Catalog
//   - FakeRunner: records installer invocations and simulates their output
//   - FakeStager: serves downloads from memory, extracts and copies for real
//   - WriteZip: builds archives laid out like client and server packs
//
// Usage guidelines:
//   - Tests that only move files use afero.NewMemMapFs()
//   - Tests that download or extract use t.TempDir() and httptest servers
//   - All test data is defined inline, not in external files
package testutil
