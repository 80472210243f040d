package multisig

import (
	"testing"

	"github.com/iov-one/custody"
	"github.com/iov-one/custody/errors"
	"github.com/iov-one/custody/weavetest"
	"github.com/iov-one/custody/weavetest/assert"
)

func TestValidateSigners(t *testing.T) {
	a, b, c := weavetest.NewAddress(), weavetest.NewAddress(), weavetest.NewAddress()
	zero := make(custody.Address, custody.AddressLength)

	cases := map[string]struct {
		signers []custody.Address
		quorum  uint32
		wantErr *errors.Error
	}{
		"single signer": {
			signers: []custody.Address{a},
			quorum:  1,
		},
		"quorum equal to signer count": {
			signers: []custody.Address{a, b, c},
			quorum:  3,
		},
		"empty signer set": {
			signers: nil,
			quorum:  1,
			wantErr: ErrEmptySignerSet,
		},
		"zero quorum": {
			signers: []custody.Address{a, b},
			quorum:  0,
			wantErr: ErrZeroQuorum,
		},
		"quorum exceeds signer count": {
			signers: []custody.Address{a, b},
			quorum:  3,
			wantErr: ErrQuorumExceedsSignerCount,
		},
		"zero address": {
			signers: []custody.Address{a, zero},
			quorum:  1,
			wantErr: ErrZeroAddressSigner,
		},
		"nil address": {
			signers: []custody.Address{nil, a},
			quorum:  1,
			wantErr: ErrZeroAddressSigner,
		},
		"duplicated signer": {
			signers: []custody.Address{a, b, a},
			quorum:  2,
			wantErr: ErrDuplicateSigner,
		},
		"malformed address": {
			signers: []custody.Address{a, custody.Address("short")},
			quorum:  1,
			wantErr: errors.ErrInput,
		},
	}

	for testName, tc := range cases {
		t.Run(testName, func(t *testing.T) {
			err := ValidateSigners(tc.signers, tc.quorum)
			assert.IsErr(t, tc.wantErr, err)
		})
	}
}

func TestValidateSignersReportsField(t *testing.T) {
	a := weavetest.NewAddress()
	err := ValidateSigners([]custody.Address{a, a}, 1)
	assert.FieldError(t, err, "Signers.1", ErrDuplicateSigner)
	assert.FieldError(t, err, "Signers.0", nil)
}

func TestModelEncoding(t *testing.T) {
	signers := weavetest.NewAddresses(3)

	reg := Registry{Signers: signers, Quorum: 2}
	raw, err := reg.Marshal()
	assert.Nil(t, err)
	var gotReg Registry
	assert.Nil(t, gotReg.Unmarshal(raw))
	assert.Equal(t, reg, gotReg)

	tp := TransferProposal{Recipient: signers[0], Amount: 7, ApprovalCount: 2, Executed: true}
	raw, err = tp.Marshal()
	assert.Nil(t, err)
	var gotTp TransferProposal
	assert.Nil(t, gotTp.Unmarshal(raw))
	assert.Equal(t, tp, gotTp)

	cp := ChangeProposal{NewSigners: signers[1:], NewQuorum: 2, ApprovalCount: 1}
	raw, err = cp.Marshal()
	assert.Nil(t, err)
	var gotCp ChangeProposal
	assert.Nil(t, gotCp.Unmarshal(raw))
	assert.Equal(t, cp, gotCp)
}

func TestCopyDoesNotShareMemory(t *testing.T) {
	signers := weavetest.NewAddresses(2)
	p := &ChangeProposal{NewSigners: signers, NewQuorum: 1, ApprovalCount: 1}
	c := p.Copy()
	c.NewSigners[0][0] ^= 0xff
	if p.NewSigners[0].Equals(c.NewSigners[0]) {
		t.Fatal("copy shares signer memory")
	}

	tp := &TransferProposal{Recipient: signers[0], Amount: 1, ApprovalCount: 1}
	tc := tp.Copy()
	tc.Recipient[0] ^= 0xff
	if tp.Recipient.Equals(tc.Recipient) {
		t.Fatal("copy shares recipient memory")
	}

	r := (&Registry{Signers: signers, Quorum: 1}).Copy()
	r.Signers[1][0] ^= 0xff
	if r.Signers[1].Equals(signers[1]) {
		t.Fatal("copy shares registry memory")
	}
}
