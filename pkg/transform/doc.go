/*
Package transform rewrites a configuration Map entry by entry, dispatching on
the shape of each value.

	| shape     | result                                                        |
	|-----------|---------------------------------------------------------------|
	| text      | rules.Text                                                    |
	| integer   | rules.Number with the entry key as operation selector         |
	| sequence  | len > 5: numeric elements doubled, others dropped             |
	|           | len <= 5: integers via "multiply", texts via rules.Text       |
	| mapping   | integers via "add", texts via rules.Text                      |
	| other     | unchanged                                                     |

The result always holds exactly the keys of the input. Entries are independent
of each other and the input is never modified.
*/
package transform
