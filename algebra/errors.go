package algebra

import "github.com/graphalg/acore/errs"

var (
	errNoRelType    = errs.New(errs.InvalidParameter, "edge pattern has no relationship type")
	errEmptySegment = errs.New(errs.InvalidParameter, "segment produced no operands")
)
