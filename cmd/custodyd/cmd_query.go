package main

import (
	"github.com/iov-one/custody"
	"github.com/spf13/cobra"
)

type transferView struct {
	ID            uint64          `json:"id"`
	Recipient     custody.Address `json:"recipient"`
	Amount        uint64          `json:"amount"`
	ApprovalCount uint32          `json:"approval_count"`
	Executed      bool            `json:"executed"`
}

type changeView struct {
	ID            uint64            `json:"id"`
	NewSigners    []custody.Address `json:"new_signers"`
	NewQuorum     uint32            `json:"new_quorum"`
	ApprovalCount uint32            `json:"approval_count"`
	Executed      bool              `json:"executed"`
}

type registryView struct {
	Signers []custody.Address `json:"signers"`
	Quorum  uint32            `json:"quorum"`
	Held    uint64            `json:"held"`
}

func printRegistry(e *env) error {
	signers, err := e.node.engine.Signers()
	if err != nil {
		return err
	}
	quorum, err := e.node.engine.Quorum()
	if err != nil {
		return err
	}
	held, err := e.node.engine.HeldBalance()
	if err != nil {
		return err
	}
	return e.print(registryView{Signers: signers, Quorum: quorum, Held: held})
}

func queryTransfer(e *env, args []string) error {
	id, err := parseUint("id", args[0], 64)
	if err != nil {
		return err
	}
	p, err := e.node.engine.Transfer(id)
	if err != nil {
		return err
	}
	return e.print(transferView{
		ID:            id,
		Recipient:     p.Recipient,
		Amount:        p.Amount,
		ApprovalCount: p.ApprovalCount,
		Executed:      p.Executed,
	})
}

func queryChange(e *env, args []string) error {
	id, err := parseUint("id", args[0], 64)
	if err != nil {
		return err
	}
	p, err := e.node.engine.Change(id)
	if err != nil {
		return err
	}
	return e.print(changeView{
		ID:            id,
		NewSigners:    p.NewSigners,
		NewQuorum:     p.NewQuorum,
		ApprovalCount: p.ApprovalCount,
		Executed:      p.Executed,
	})
}

// approved returns a query printing whether the signer approved the
// proposal of given kind.
func approved(transfer bool) func(e *env, args []string) error {
	return func(e *env, args []string) error {
		id, err := parseUint("id", args[0], 64)
		if err != nil {
			return err
		}
		signer, err := custody.ParseAddress(args[1])
		if err != nil {
			return err
		}
		var ok bool
		if transfer {
			ok, err = e.node.engine.TransferApproved(id, signer)
		} else {
			ok, err = e.node.engine.ChangeApproved(id, signer)
		}
		if err != nil {
			return err
		}
		return e.print(map[string]bool{"approved": ok})
	}
}

func queryCounts(e *env, args []string) error {
	transfers, err := e.node.engine.TransferCount()
	if err != nil {
		return err
	}
	changes, err := e.node.engine.ChangeCount()
	if err != nil {
		return err
	}
	return e.print(map[string]uint64{"transfers": transfers, "changes": changes})
}

func queryBalance(e *env, args []string) error {
	addr, err := custody.ParseAddress(args[0])
	if err != nil {
		return err
	}
	n, err := e.node.engine.Balance(addr)
	if err != nil {
		return err
	}
	signer, err := e.node.engine.IsSigner(addr)
	if err != nil {
		return err
	}
	admin, err := e.node.engine.IsAdmin(addr)
	if err != nil {
		return err
	}
	return e.print(map[string]interface{}{"balance": n, "signer": signer, "admin": admin})
}

func queryCmd(run runner) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query",
		Short: "Read the engine state",
	}
	cmd.AddCommand(
		txCmd("registry", "Current signers, quorum and held value", 0, run(func(e *env, _ []string) error { return printRegistry(e) })),
		txCmd("transfer <id>", "A transfer proposal", 1, run(queryTransfer)),
		txCmd("transfer-approved <id> <signer>", "Whether a signer approved a transfer", 2, run(approved(true))),
		txCmd("change <id>", "A change proposal", 1, run(queryChange)),
		txCmd("change-approved <id> <signer>", "Whether a signer approved a change", 2, run(approved(false))),
		txCmd("counts", "Number of proposals of each kind", 0, run(queryCounts)),
		txCmd("account <address>", "Balance and roles of an address", 1, run(queryBalance)),
	)
	return cmd
}
