package typedmsg

import (
	"errors"

	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/host"
	"github.com/doitian/ckb-transaction-cobuild-poc/pkg/schemas"
)

// FetchSighash loads the current group's primary witness and decodes it.
// Only the Sighash and SighashWithAction variants may occupy that slot.
func (p *Parser) FetchSighash() (schemas.ExtendedWitness, error) {
	raw, err := p.ld.Witness(0, host.SourceGroupInput)
	if err != nil {
		return nil, hostErr("load group witness 0", err)
	}
	w, err := p.decode(raw)
	if err != nil {
		return nil, &Error{Code: ErrMalformedWitness, Msg: "group witness 0 is not an extended witness", Cause: err}
	}
	switch w.(type) {
	case *schemas.Sighash, *schemas.SighashWithAction:
		return w, nil
	}
	return nil, newError(ErrMalformedWitness, "group witness 0 holds union variant %d", w.UnionID())
}

// FetchSighashWithAction scans every witness of the transaction for the
// one carrying the typed message. Exactly one must exist; it may sit at any
// global index, including slots that belong to other script groups. Bytes
// that do not decode as an extended witness are other locks' business and
// are skipped.
func (p *Parser) FetchSighashWithAction() (*schemas.SighashWithAction, error) {
	var found *schemas.SighashWithAction
	for i := 0; ; i++ {
		raw, err := p.ld.Witness(i, host.SourceInput)
		if errors.Is(err, host.ErrIndexOutOfBound) {
			break
		}
		if err != nil {
			return nil, hostErr("load witness", err)
		}
		w, err := p.decode(raw)
		if err != nil {
			continue
		}
		swa, ok := w.(*schemas.SighashWithAction)
		if !ok {
			continue
		}
		if found != nil {
			return nil, newError(ErrMultipleActionWitnesses, "second typed message witness at index %d", i)
		}
		found = swa
	}
	if found == nil {
		return nil, newError(ErrMissingActionWitness, "no witness carries the typed message")
	}
	return found, nil
}

// CheckOthersInGroup requires every group witness after the first to be
// empty. Bytes there sit outside the signing digest, so any content could
// change after signing without invalidating the signature.
func (p *Parser) CheckOthersInGroup() error {
	for i := 1; ; i++ {
		raw, err := p.ld.Witness(i, host.SourceGroupInput)
		if errors.Is(err, host.ErrIndexOutOfBound) {
			return nil
		}
		if err != nil {
			return hostErr("load group witness", err)
		}
		if len(raw) != 0 {
			return newError(ErrUnexpectedTrailerData, "group witness %d carries %d bytes", i, len(raw))
		}
	}
}
