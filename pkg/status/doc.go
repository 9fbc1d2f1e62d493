/*
Package status writes transformed files and keeps track of what happened to them.

	+-------------+      +-------------+
	|  operation  | ---> |   Manager   |
	+-------------+      +------+------+
	                            |
	               +------------+------------+
	               |                         |
	        +------+------+           +------+------+
	        |  Classify + |           |  TrackFile  |
	        |  WriteAtomic|           |  Progress   |
	        +-------------+           +-------------+

🎯 Purpose:
- Decide whether an output is new, modified or unchanged before writing
- Write outputs through a temp file and rename, so a reader never sees half a file
- Record per-file outcomes and batch progress for reporting

🤝 Concurrency:
Manager methods lock internally; the operation runner calls them from many
goroutines when running asynchronously.
*/
package status
