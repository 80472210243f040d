// Package admin grants and revokes the capability to rotate the multisig
// signers without a proposal. Only the super admin set in genesis can manage
// capabilities.
package admin
