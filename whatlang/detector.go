// Package whatlang detects the natural language of text with whatlanggo.
package whatlang

import (
	"strings"

	"github.com/RadhiFadlillah/whatlanggo"
	"github.com/fwojciec/pagescope"
)

// Ensure Detector implements pagescope.LanguageDetector at compile time.
var _ pagescope.LanguageDetector = (*Detector)(nil)

// Options restricts detection. Codes are ISO 639-3 (for example "eng",
// "deu"). Allow and Deny are mutually exclusive; when Allow is set, only
// those languages are considered.
type Options struct {
	Allow []string
	Deny  []string

	// MinConfidence rejects detections below this confidence (0..1).
	MinConfidence float64
}

// Detector identifies the language of text. The zero Options value
// considers every language and accepts any confidence.
// Detector is safe for concurrent use.
type Detector struct {
	opts          whatlanggo.Options
	minConfidence float64
}

// NewDetector creates a Detector. Unknown language codes and conflicting
// allow/deny lists are reported as EINVALID.
func NewDetector(opts Options) (*Detector, error) {
	if len(opts.Allow) > 0 && len(opts.Deny) > 0 {
		return nil, pagescope.Errorf(pagescope.EINVALID, "language allow and deny lists are mutually exclusive")
	}
	if opts.MinConfidence < 0 || opts.MinConfidence > 1 {
		return nil, pagescope.Errorf(pagescope.EINVALID, "minimum confidence must be between 0 and 1, got %v", opts.MinConfidence)
	}

	allow, err := langSet(opts.Allow)
	if err != nil {
		return nil, err
	}
	deny, err := langSet(opts.Deny)
	if err != nil {
		return nil, err
	}

	return &Detector{
		opts:          whatlanggo.Options{Whitelist: allow, Blacklist: deny},
		minConfidence: opts.MinConfidence,
	}, nil
}

// DetectLanguage returns the most likely language of text.
func (d *Detector) DetectLanguage(text string) (*pagescope.Language, error) {
	if strings.TrimSpace(text) == "" {
		return nil, pagescope.Errorf(pagescope.EINVALID, "no text to detect language from")
	}

	info := whatlanggo.DetectWithOptions(text, d.opts)
	name := info.Lang.String()
	if name == "" {
		return nil, pagescope.Errorf(pagescope.ENOTFOUND, "language could not be determined")
	}
	if info.Confidence < d.minConfidence {
		return nil, pagescope.Errorf(pagescope.ENOTFOUND, "language %s below confidence %.2f (got %.2f)", name, d.minConfidence, info.Confidence)
	}

	lang := &pagescope.Language{
		Code:       info.Lang.Iso6393(),
		Name:       name,
		Confidence: info.Confidence,
	}
	if info.Script != nil {
		lang.Script = whatlanggo.Scripts[info.Script]
	}
	return lang, nil
}

func langSet(codes []string) (map[whatlanggo.Lang]bool, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	set := make(map[whatlanggo.Lang]bool, len(codes))
	for _, code := range codes {
		code = strings.ToLower(strings.TrimSpace(code))
		lang := whatlanggo.CodeToLang(code)
		if lang.String() == "" {
			return nil, pagescope.Errorf(pagescope.EINVALID, "unknown language code %q", code)
		}
		set[lang] = true
	}
	return set, nil
}
