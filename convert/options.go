package convert

// Option controls a single conversion.
type Option interface {
	apply(*config)
}

type config struct {
	// stringify renders a present field value as text.
	stringify func(any) string

	// encode, when set, is applied to every value after stringify.
	encode func(string) string
}

func newConfig() *config {
	return &config{
		stringify: Stringify,
	}
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) { f(cfg) }

// WithEncoder applies enc to each value (never to keys). A nil enc
// leaves values as stringified.
func WithEncoder(enc func(string) string) Option {
	return optionFunc(func(cfg *config) {
		cfg.encode = enc
	})
}

// EncodeValues percent-encodes values with PercentEncode.
func EncodeValues() Option {
	return WithEncoder(PercentEncode)
}

// WithStringifier replaces Stringify for rendering values. A nil fn
// restores the default.
func WithStringifier(fn func(any) string) Option {
	return optionFunc(func(cfg *config) {
		if fn == nil {
			fn = Stringify
		}
		cfg.stringify = fn
	})
}
