/*
Package operation runs a rule script over a batch of files.

	+-------------+
	|  Operation  |
	| (Core Logic)|
	+------+------+
	       |
	+------+------+      +-------------+
	|   Runner    +----->+   Process   |
	| (sync/async)|      | (Transform) |
	+------+------+      +------+------+
	                            |
	                     +------+------+
	                     |   Status    |
	                     |  (Outputs)  |
	                     +-------------+

🎯 Purpose:
- Loads and parses the script before touching any input
- Expands doublestar input globs into a sorted file list
- Applies the rules to each file through text.Replacer
- Hands outputs to the status package for atomic writes

🔄 Operations:
- TransformOperation writes <source><suffix>, or the explicit output when
  exactly one input resolves
- DiffOperation renders a colored line diff and writes nothing
- CheckOperation only parses the script and lists its rules

⚡ Concurrency:
With async set, files are processed on an errgroup bounded by workers. The
first failure cancels the group and files that have not started are skipped.
A RuleSet is read-only, so every worker shares the same one.

🔍 Example:

	op, err := operation.NewTransformOperation(operation.Options{Config: cfg})
	if err != nil {
		return err
	}
	if err := op.Execute(ctx); err != nil {
		var scriptErr *script.ScriptError
		if errors.As(err, &scriptErr) {
			// nothing was written
		}
		return err
	}
*/
package operation
