package generator

const (
	// DefaultPatience is the number of unproductive candidates after which the
	// best candidate seen so far is accepted and the target separation lowered.
	DefaultPatience = 5000

	// DefaultMinSeparation is the smallest separation a generated codebook may
	// fall back to. Markers at distance 0 can not be told apart.
	DefaultMinSeparation = 1

	// cancelCheckInterval is how many candidates are drawn between context
	// checks.
	cancelCheckInterval = 1024
)

type Options struct {
	Patience      int
	MinSeparation int
}

// Option is a generic option type. Implementations type assert to the
// Options target record and if that fails the expectation they ignore the
// option.
type Option func(any)

func WithPatience(patience int) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.Patience = patience
		}
	}
}

func WithMinSeparation(minSeparation int) Option {
	return func(opts any) {
		if o, ok := opts.(*Options); ok {
			o.MinSeparation = minSeparation
		}
	}
}
