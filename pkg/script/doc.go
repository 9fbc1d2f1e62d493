/*
Package script parses replacement scripts into ordered, compiled rules.

	+------------------+
	|   script text    |
	+--------+---------+
	         |  split lines (\r\n == \n), number from 1
	+--------+---------+
	|  line classifier |--> empty / comment: skipped
	+--------+---------+
	         |  "find" -> "replace"
	+--------+---------+
	|  NewRule         |--> compile find with a matcher.Engine
	+--------+---------+
	         |
	+--------+---------+
	|     RuleSet      |
	+------------------+

📝 Line format:

	[prose] "find" -> "replace" [prose]

Prose before and after the quoted pair is ignored, so a line can carry its own
comment. Each quoted span ends at the first double quote; a quote cannot appear
inside the find or replace text.

🔤 Escapes (replace side only):
  - \n becomes a newline
  - \r becomes a carriage return
  - \\ becomes a single backslash

Escapes are decoded in one left-to-right pass, so \\n is a backslash followed by
n. Any other backslash is kept as is. The find side is handed to the pattern
compiler untouched, so regex escaping there is the engine's (\. for a literal dot).

💬 Comments:
Lines beginning with the comment prefix (default "//") are skipped along with
empty lines. WithCommentPrefix("") turns comment skipping off.

🚫 Errors:
Parsing stops at the first bad line. The caller gets a *ScriptError carrying the
1-based line number and wrapping either a *LineFormatError or a *PatternError.
No partial RuleSet is ever returned.

🤝 Concurrency:
A RuleSet and its rules are never modified after Parse returns, so any number of
goroutines can apply the same RuleSet at once.
*/
package script
