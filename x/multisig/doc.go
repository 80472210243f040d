/*
Package multisig implements custody of value under the control of a set of
signers.

A signer proposes a transfer out of the vault, or a replacement of the
signers and quorum. Every signer can approve a proposal once. When the
count of approvals reaches the quorum of the current registry, any signer
can execute the proposal, exactly once.

The registry can also be replaced by an admin, as decided by an
AdminChecker. The package does not hold admin roles itself.
*/
package multisig
