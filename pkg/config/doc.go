/*
Package config loads regexer configuration files.

	            +-------------+
	            |   Config    |
	            | (Settings)  |
	            +------+------+
	                   |
	      +------------+------------+
	      |            |            |
	+-----+----+ +-----+----+ +-----+----+
	|   YAML   | |   HCL    | |   JSON   |
	|  Parser  | |  Parser  | |  Parser  |
	+----------+ +----------+ +----------+

🎯 Purpose:
- Picks a parser from the file extension
- Rejects unknown keys in every format
- Resolves script and input paths against the config file's directory
- Fills in defaults and validates the result

🔄 Flow:
1. Load reads and parses the file
2. The caller applies command line overrides
3. Validate applies defaults and checks required fields

📝 Keys:

	script                   rule script path (required)
	inputs                   doublestar globs of subject files (required)
	output                   explicit destination, single input only
	suffix                   destination suffix, default ".replaced"
	engine                   "re2" (default) or "regexp2"
	comment_prefix           full-line comment marker, default "//"
	comment_prefix_disabled  only skip empty lines
	async                    process files concurrently
	workers                  concurrency bound, default runtime.NumCPU()

🔍 Example:

	cfg, err := config.Load(ctx, ".regexer.hcl")
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}

HCL files can read the environment:

	script = "${env.HOME}/scripts/fix.txt"
	inputs = ["docs/*.md", "README.md"]
*/
package config
