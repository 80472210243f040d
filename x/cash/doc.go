/*
Package cash keeps the balance of every address in a single currency.

It is used by the multisig engine to hold value in its vault wallet and to
pay out approved transfers. The Controller is the only way other extensions
should modify wallets.
*/
package cash
