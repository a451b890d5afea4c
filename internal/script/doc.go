// Package script models the canonical prompt list.
//
// A script item is one numbered prompt line; its lifecycle is driven by
// reconciliation and by accept/remove, never by deletion. The package owns
// the text formats the project exchanges with the outside world: the
// prompt list ("{num}. {text}" per line), the removal list (one num per
// line), and the merge rule for adding prompts to an open project.
package script
