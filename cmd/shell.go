// File: cmd/shell.go
package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/google/shlex"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/term"

	"promptbuilder/pkg/prompt"
)

const shellHelp = `commands:
  add <path>...          register files or folders
  drop <payload>         register paths from a drag-and-drop payload
  ext [list]             set the extension whitelist, e.g. "py, go"
  recursive on|off       descend into subdirectories when adding folders
  search [term]          filter the listing (empty shows everything)
  ls                     list the filtered entries
  toggle <n|path>...     flip selection (n is the number shown by ls)
  rm <n|path>...         remove entries
  select-all             select every listed entry
  deselect-all           deselect every listed entry
  remove-all             remove every listed entry
  query [text]           set the query
  build                  assemble the prompt
  show                   print the last prompt
  copy                   copy the last prompt to the clipboard
  stats                  print counts for the last prompt
  help                   show this help
  quit                   leave the shell
`

func newShellCmd(a *app) *cobra.Command {
	var f sessionFlags
	cmd := &cobra.Command{
		Use:   "shell",
		Short: "Interactively register, filter and select files, then build a prompt",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			sess, err := a.newSession(cmd, &f)
			if err != nil {
				return err
			}
			in := cmd.InOrStdin()
			sh := &shell{
				sess:        sess,
				out:         cmd.OutOrStdout(),
				interactive: isTerminal(in),
				copy:        copyToClipboard,
				logger:      a.logger,
			}
			return sh.run(in)
		},
	}
	addSessionFlags(cmd, &f)
	return cmd
}

func isTerminal(r io.Reader) bool {
	f, ok := r.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// shell is a line-oriented front end over one prompt.Session.
type shell struct {
	sess        *prompt.Session
	out         io.Writer
	interactive bool
	copy        func(string) error
	logger      *zap.Logger
	view        []prompt.FileEntry // Listing that numeric arguments refer to.
}

func (sh *shell) run(in io.Reader) error {
	scanner := bufio.NewScanner(in)
	scanner.Buffer(make([]byte, 64*1024), 1024*1024)
	for {
		if sh.interactive {
			fmt.Fprint(sh.out, "> ")
		}
		if !scanner.Scan() {
			return scanner.Err()
		}
		if quit := sh.exec(scanner.Text()); quit {
			return nil
		}
	}
}

// exec runs one command line and reports whether the shell should exit.
func (sh *shell) exec(line string) bool {
	name, rest, _ := strings.Cut(strings.TrimSpace(line), " ")
	rest = strings.TrimSpace(rest)
	sh.logger.Debug("Shell command", zap.String("command", name))

	switch name {
	case "":
	case "quit", "exit":
		return true
	case "help":
		fmt.Fprint(sh.out, shellHelp)
	case "add":
		args, ok := sh.split(rest)
		if !ok {
			break
		}
		added := 0
		for _, raw := range args {
			added += sh.sess.AddPath(raw)
		}
		fmt.Fprintf(sh.out, "added %d file(s)\n", added)
	case "drop":
		fmt.Fprintf(sh.out, "added %d file(s)\n", sh.sess.Drop(rest))
	case "ext":
		sh.sess.SetWhitelist(rest)
		if rest == "" {
			fmt.Fprintln(sh.out, "whitelist cleared, all extensions allowed")
		} else {
			fmt.Fprintf(sh.out, "whitelist: %s\n", strings.Join(prompt.ParseWhitelist(rest).Extensions(), ", "))
		}
	case "recursive":
		switch strings.ToLower(rest) {
		case "on", "true", "yes":
			sh.sess.SetRecursive(true)
		case "off", "false", "no":
			sh.sess.SetRecursive(false)
		default:
			fmt.Fprintln(sh.out, "usage: recursive on|off")
		}
		fmt.Fprintf(sh.out, "recursive: %t\n", sh.sess.Recursive())
	case "search":
		sh.sess.SetSearch(rest)
		sh.list()
	case "ls":
		sh.list()
	case "toggle":
		for _, path := range sh.targets(rest) {
			sh.sess.Toggle(path)
		}
		sh.list()
	case "rm":
		fmt.Fprintf(sh.out, "removed %d file(s)\n", sh.sess.Remove(sh.targets(rest)...))
	case "select-all":
		fmt.Fprintf(sh.out, "selected %d file(s)\n", sh.sess.SelectVisible())
	case "deselect-all":
		fmt.Fprintf(sh.out, "deselected %d file(s)\n", sh.sess.DeselectVisible())
	case "remove-all":
		fmt.Fprintf(sh.out, "removed %d file(s)\n", sh.sess.RemoveVisible())
	case "query":
		sh.sess.SetQuery(rest)
	case "build":
		res := sh.sess.Build()
		fmt.Fprintf(sh.out, "built prompt: %d chars, %d words, %d selected\n",
			res.Stats.Chars, res.Stats.Words, sh.sess.SelectedCount())
		report(sh.out, res)
	case "show":
		fmt.Fprint(sh.out, sh.sess.Last().Text)
	case "copy":
		if err := sh.copy(sh.sess.Last().Text); err != nil {
			fmt.Fprintf(sh.out, "copy failed: %v\n", err)
			break
		}
		fmt.Fprintln(sh.out, "copied prompt to clipboard")
	case "stats":
		st := sh.sess.Last().Stats
		fmt.Fprintf(sh.out, "%d chars, %d words, %d selected\n", st.Chars, st.Words, sh.sess.SelectedCount())
	default:
		fmt.Fprintf(sh.out, "unknown command %q, type help\n", name)
	}
	return false
}

func (sh *shell) split(rest string) ([]string, bool) {
	args, err := shlex.Split(rest)
	if err != nil {
		fmt.Fprintf(sh.out, "cannot parse arguments: %v\n", err)
		return nil, false
	}
	return args, true
}

// targets maps numbers from the last listing and raw paths to canonical paths.
func (sh *shell) targets(rest string) []string {
	args, ok := sh.split(rest)
	if !ok {
		return nil
	}
	var paths []string
	for _, arg := range args {
		if n, err := strconv.Atoi(arg); err == nil {
			if n < 1 || n > len(sh.view) {
				fmt.Fprintf(sh.out, "no entry %d\n", n)
				continue
			}
			paths = append(paths, sh.view[n-1].CanonicalPath)
			continue
		}
		// Entries whose file has vanished must stay addressable, so no existence check.
		path, err := filepath.Abs(arg)
		if err != nil {
			fmt.Fprintf(sh.out, "invalid path %s: %v\n", arg, err)
			continue
		}
		paths = append(paths, path)
	}
	return paths
}

func (sh *shell) list() {
	sh.view = sh.sess.View()
	for i, e := range sh.view {
		mark := " "
		if e.Selected {
			mark = "x"
		}
		fmt.Fprintf(sh.out, "%3d [%s] %s\n", i+1, mark, e.DisplayPath)
	}
	fmt.Fprintf(sh.out, "%d shown, %d selected\n", len(sh.view), sh.sess.SelectedCount())
}
