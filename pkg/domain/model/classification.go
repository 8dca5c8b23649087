package model

import (
	"github.com/m-mizutani/goerr/v2"

	"github.com/mailcrest/mailcrest/pkg/domain/types"
)

// Classification is the output of the upstream classification pipeline for
// one email. The resolution engine treats the intent as an opaque key and
// performs no language understanding itself.
type Classification struct {
	Intent     types.Intent `json:"intent"`
	Confidence float64      `json:"confidence"`
	Entities   *EntityBag   `json:"entities"`
}

// Validate checks the classification envelope
func (x *Classification) Validate() error {
	if err := x.Intent.Validate(); err != nil {
		return goerr.Wrap(err, "invalid classification intent")
	}
	if x.Confidence < 0 || x.Confidence > 1 {
		return goerr.New("confidence must be in [0, 1]",
			goerr.V("intent", x.Intent.String()),
			goerr.V("confidence", x.Confidence))
	}
	return nil
}

// EntityBagOrEmpty returns the entity bag, or an empty bag when none was
// supplied
func (x *Classification) EntityBagOrEmpty() *EntityBag {
	if x.Entities == nil {
		return EmptyEntityBag()
	}
	return x.Entities
}
