package cite

import (
	"fmt"
	"log/slog"
)

// Resolver binds citations to sources in one sequential pass over the whole
// document. Order is the contract: "Id." refers to whatever was cited last
// anywhere above, even across footnote boundaries, so resolution state is
// document-global and the pass must never reorder.
type Resolver struct {
	reg    *Registry
	logger *slog.Logger
}

func NewResolver(reg *Registry, logger *slog.Logger) *Resolver {
	if logger == nil {
		logger = slog.Default()
	}
	return &Resolver{reg: reg, logger: logger}
}

// Resolve walks citations in document order (ascending footnote index, then
// cite index), minting sources for full citations and binding short forms.
// Unresolvable references get an unresolved-reference warning and leave all
// resolution state untouched.
func (rs *Resolver) Resolve(citations []Citation) {
	var last *Source
	firstByFootnote := make(map[int]*Source)

	// established records a source as the footnote's first if none is set,
	// making it the target of later "supra note N" references.
	established := func(fn int, s *Source) {
		if _, ok := firstByFootnote[fn]; !ok {
			firstByFootnote[fn] = s
		}
	}

	for i := range citations {
		c := &citations[i]

		switch c.Kind {
		case KindFull:
			s := rs.reg.RegisterOrGet(c.stripped, c.FootnoteIndex, c.CiteIndex)
			c.SourceKey = s.Key
			last = s
			established(c.FootnoteIndex, s)

		case KindShort:
			s := rs.reg.Lookup(c.shortText)
			if s == nil {
				c.warn(WarnUnresolvedReference,
					fmt.Sprintf("no earlier source matches short citation %q", c.shortText))
				rs.logger.Debug("unresolved short citation",
					"footnote", c.FootnoteIndex, "cite", c.CiteIndex, "text", c.shortText)
				continue
			}
			c.SourceKey = s.Key
			last = s
			established(c.FootnoteIndex, s)

		case KindID:
			if last == nil {
				c.warn(WarnUnresolvedReference, "Id. citation has no preceding source")
				continue
			}
			// Pincite comes from the citation's own text, never inherited.
			c.SourceKey = last.Key

		case KindSupra:
			s, ok := firstByFootnote[c.SupraTarget]
			switch {
			case c.SupraTarget <= 0:
				c.warn(WarnUnresolvedReference, "supra citation has no usable note number")
			case c.SupraTarget >= c.FootnoteIndex:
				c.warn(WarnUnresolvedReference,
					fmt.Sprintf("supra note %d is a forward reference from footnote %d",
						c.SupraTarget, c.FootnoteIndex))
			case !ok:
				c.warn(WarnUnresolvedReference,
					fmt.Sprintf("footnote %d established no source for this supra citation", c.SupraTarget))
			default:
				c.SourceKey = s.Key
				last = s
			}

		case KindUnparseable:
			// Warning already attached by the parser; no state change.
		}
	}
}
