package cli

import (
	"fmt"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/charmbracelet/lipgloss"
)

// Custom help styles - signal theme
var (
	helpTitleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ReferenceBlue).
			MarginBottom(1)

	helpDescStyle = lipgloss.NewStyle().
			Foreground(SampleGold).
			Italic(true).
			MarginBottom(1)

	helpSectionStyle = lipgloss.NewStyle().
				Bold(true).
				Foreground(SampleGold).
				MarginTop(1)

	helpCommandStyle = lipgloss.NewStyle().
				Foreground(ReferenceBlue).
				Bold(true)

	helpFlagStyle = lipgloss.NewStyle().
			Foreground(ReferenceBlue).
			Bold(true)

	helpArgStyle = lipgloss.NewStyle().
			Foreground(TraceCoral).
			Bold(true)

	helpDefaultStyle = lipgloss.NewStyle().
				Foreground(MutedSlate).
				Italic(true)
)

// StyledHelpPrinter creates a custom help printer with Lipgloss styling.
// Help is context-sensitive: a selected subcommand lists its own
// arguments and flags plus the global ones.
func StyledHelpPrinter(options kong.HelpOptions) kong.HelpPrinter {
	return kong.HelpPrinter(func(options kong.HelpOptions, ctx *kong.Context) error {
		var sb strings.Builder

		node := ctx.Selected()
		if node == nil {
			node = ctx.Model.Node
		}

		// Title and description
		sb.WriteString(helpTitleStyle.Render(appName))
		sb.WriteString("\n")
		desc := appDescription
		if node != ctx.Model.Node && node.Help != "" {
			desc = node.Help
		}
		sb.WriteString(helpDescStyle.Render(desc))
		sb.WriteString("\n")

		// Usage
		sb.WriteString(helpSectionStyle.Render("Usage:"))
		sb.WriteString("\n  ")
		sb.WriteString(usageLine(node))
		sb.WriteString("\n")

		// Commands section
		commands := getCommands(node)
		if len(commands) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Commands:"))
			sb.WriteString("\n")
			width := 0
			for _, cmd := range commands {
				width = max(width, len(cmd.name))
			}
			for _, cmd := range commands {
				sb.WriteString("  ")
				sb.WriteString(helpCommandStyle.Render(fmt.Sprintf("%-*s", width, cmd.name)))
				if cmd.help != "" {
					sb.WriteString("  ")
					sb.WriteString(cmd.help)
				}
				sb.WriteString("\n")
			}
		}

		// Arguments section
		args := getArguments(node)
		if len(args) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Arguments:"))
			sb.WriteString("\n")
			for _, arg := range args {
				sb.WriteString("  ")
				sb.WriteString(helpArgStyle.Render(arg.name))
				if arg.help != "" {
					sb.WriteString("  ")
					sb.WriteString(arg.help)
				}
				sb.WriteString("\n")
			}
		}

		// Flags section
		flags := getFlags(node)
		if len(flags) > 0 {
			sb.WriteString("\n")
			sb.WriteString(helpSectionStyle.Render("Flags:"))
			sb.WriteString("\n")
			for _, flag := range flags {
				sb.WriteString("  ")
				sb.WriteString(helpFlagStyle.Render(flag.flags))
				if flag.help != "" {
					sb.WriteString("  ")
					sb.WriteString(flag.help)
				}
				if flag.defaultVal != "" {
					sb.WriteString(" ")
					sb.WriteString(helpDefaultStyle.Render("(default: " + flag.defaultVal + ")"))
				}
				sb.WriteString("\n")
			}
		}

		sb.WriteString("\n")
		fmt.Fprint(ctx.Stdout, sb.String())
		return nil
	})
}

type command struct {
	name string
	help string
}

type argument struct {
	name string
	help string
}

type flag struct {
	flags      string
	help       string
	defaultVal string
}

func usageLine(node *kong.Node) string {
	line := node.FullPath()
	if len(node.Children) > 0 {
		line += " <command>"
	}
	for _, arg := range node.Positional {
		line += " " + arg.Summary()
	}
	return line + " [flags]"
}

func getCommands(node *kong.Node) []command {
	var commands []command
	for _, child := range node.Children {
		if child.Hidden {
			continue
		}
		commands = append(commands, command{name: child.Name, help: child.Help})
	}
	return commands
}

func getArguments(node *kong.Node) []argument {
	var args []argument

	// Parse arguments from the model
	for _, arg := range node.Positional {
		name := arg.Summary()
		help := arg.Help
		args = append(args, argument{name: name, help: help})
	}

	return args
}

func getFlags(node *kong.Node) []flag {
	var flags []flag

	// Always include help flag
	flags = append(flags, flag{
		flags: "-h, --help",
		help:  "Show context-sensitive help.",
	})

	// Own flags first, then those inherited from parent commands
	for n := node; n != nil; n = n.Parent {
		for _, f := range n.Flags {
			if f.Name == "help" || f.Hidden {
				continue // Already added
			}

			flagStr := ""
			if f.Short != 0 {
				flagStr = fmt.Sprintf("-%c, --%s", f.Short, f.Name)
			} else {
				flagStr = fmt.Sprintf("--%s", f.Name)
			}

			if !f.IsBool() && f.PlaceHolder != "" {
				flagStr += "=" + strings.ToUpper(f.PlaceHolder)
			}

			// Only show default if it's a meaningful value (not empty, not type placeholder)
			defaultVal := ""
			if f.HasDefault && !f.IsBool() {
				val := f.Default
				if val != "" && val != "STRING" && val != "BOOL" {
					defaultVal = val
				}
			}

			flags = append(flags, flag{
				flags:      flagStr,
				help:       f.Help,
				defaultVal: defaultVal,
			})
		}
	}

	return flags
}
