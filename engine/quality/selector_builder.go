package quality

import "time"

// SelectorBuilderOption is a functional option used to configure a Selector during construction.
type SelectorBuilderOption func(*selectorImpl)

// WithDebounce overrides the resize debounce interval. Mainly useful in tests
// to avoid waiting the full default window.
//
// Parameters:
//   - d: the debounce interval
//
// Returns:
//   - SelectorBuilderOption: a function that sets the debounce interval for this selector
func WithDebounce(d time.Duration) SelectorBuilderOption {
	return func(s *selectorImpl) {
		s.debounce = d
	}
}
