// Package mocks provides hand-written test doubles shared across packages.
//
// Each mock exposes a function field per method; when the field is nil the
// mock returns its default values instead. Mocks record their calls so tests
// can assert that a stage was, or was not, reached:
//
//	import "github.com/phrazzld/flashdeck/internal/mocks"
//
//	func TestSomething(t *testing.T) {
//	    gateway := mocks.NewMockGatewayWithResponse(`[{"front":"Q","back":"A"}]`)
//
//	    // Use the mock in your test...
//
//	    assert.Equal(t, 1, gateway.CallCount())
//	}
package mocks
