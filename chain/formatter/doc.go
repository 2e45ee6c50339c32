/*
Package formatter holds the per entity formatting hooks a chain descriptor may register.

A chain registers at most one Formatter per entity kind (block, transaction, transaction receipt
and transaction request). Call sites never invoke a hook directly; they go through Format, which
runs the generic routine, looks up the chain's formatter and merges the two shapes:

	out, err := formatter.Format(chain.Formatters, formatter.KindBlock, raw, formatter.Generic(formatter.KindBlock))

The merge rule is fixed: generic fields named in Exclude are dropped, the custom output wins on
conflict and every other generic field passes through.
*/
package formatter
