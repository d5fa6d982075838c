package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/heathj/marksoup/parser"
	"github.com/heathj/marksoup/parser/dom"
)

// presets is the shape of a --features TOML file:
//
//	[features]
//	namespaces = false
//	[properties]
//	default-encoding = "windows-1252"
type presets struct {
	Features   map[string]bool   `toml:"features"`
	Properties map[string]string `toml:"properties"`
}

type options struct {
	namespaces  bool
	balanceTags bool
	fatal       bool
	encoding    string
	featureFile string
	debug       bool
}

func (o *options) register(cmd *cobra.Command) {
	cmd.PersistentFlags().BoolVar(&o.namespaces, "namespaces", true, "resolve namespace prefixes")
	cmd.PersistentFlags().BoolVar(&o.balanceTags, "balance-tags", true, "repair mismatched and missing end tags")
	cmd.PersistentFlags().BoolVar(&o.fatal, "fatal", false, "stop at the first structural error")
	cmd.PersistentFlags().StringVar(&o.encoding, "encoding", "", "character encoding label of the input")
	cmd.PersistentFlags().StringVar(&o.featureFile, "features", "", "TOML file with feature/property presets")
	cmd.PersistentFlags().BoolVar(&o.debug, "debug", false, "enable debug logging")
}

// configure builds a parser configuration from the flags and the
// optional preset file. Flag values are applied after the file, so
// flags win.
func (o *options) configure() (*parser.Configuration, error) {
	if o.debug {
		logrus.SetLevel(logrus.DebugLevel)
	}
	c := parser.NewConfiguration()
	if o.featureFile != "" {
		var p presets
		if _, err := toml.DecodeFile(o.featureFile, &p); err != nil {
			return nil, fmt.Errorf("loading presets: %w", err)
		}
		for id, on := range p.Features {
			if err := c.SetFeature(id, on); err != nil {
				return nil, err
			}
		}
		for id, v := range p.Properties {
			if err := c.SetProperty(id, v); err != nil {
				return nil, err
			}
		}
	}
	for id, on := range map[string]bool{
		parser.FeatureNamespaces:           o.namespaces,
		parser.FeatureBalanceTags:          o.balanceTags,
		parser.FeatureStructureErrorsFatal: o.fatal,
	} {
		if err := c.SetFeature(id, on); err != nil {
			return nil, err
		}
	}
	c.SetErrorHandler(&consoleErrors{})
	return c, nil
}

func (o *options) source(path string) *parser.InputSource {
	src := parser.NewInputSource(path)
	src.Encoding = o.encoding
	return src
}

// consoleErrors prints every reported condition to stderr and never
// aborts the parse itself.
type consoleErrors struct{}

func (consoleErrors) Warning(err *parser.ParseError) error {
	fmt.Fprintf(os.Stderr, "warning: %s\n", err)
	return nil
}

func (consoleErrors) Error(err *parser.ParseError) error {
	fmt.Fprintf(os.Stderr, "error: %s\n", err)
	return nil
}

func (consoleErrors) FatalError(err *parser.ParseError) error {
	fmt.Fprintf(os.Stderr, "fatal: %s\n", err)
	return nil
}

func main() {
	opts := &options{}
	rootCmd := &cobra.Command{
		Use:   "marksoup",
		Short: "Tolerant HTML/XML parsing toolkit",
	}
	opts.register(rootCmd)

	eventsCmd := &cobra.Command{
		Use:   "events <file>",
		Short: "Print the document's event stream",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.configure()
			if err != nil {
				return err
			}
			c.SetDocumentHandler(&eventPrinter{out: cmd.OutOrStdout()})
			return c.Parse(opts.source(args[0]))
		},
	}

	treeCmd := &cobra.Command{
		Use:   "tree <file>",
		Short: "Parse a document and print its tree",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.configure()
			if err != nil {
				return err
			}
			builder := dom.NewTreeBuilder()
			c.SetDocumentHandler(builder)
			if err := c.Parse(opts.source(args[0])); err != nil {
				return err
			}
			printTree(cmd, builder.Document(), 0)
			return nil
		},
	}

	queryCmd := &cobra.Command{
		Use:   "query <file> <xpath>",
		Short: "Evaluate an XPath expression over a parsed document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := opts.configure()
			if err != nil {
				return err
			}
			builder := dom.NewTreeBuilder()
			c.SetDocumentHandler(builder)
			if err := c.Parse(opts.source(args[0])); err != nil {
				return err
			}
			nodes, err := dom.Query(builder.Document(), args[1])
			if err != nil {
				return err
			}
			for _, n := range nodes {
				printMatch(cmd, n)
			}
			return nil
		},
	}

	rootCmd.AddCommand(eventsCmd, treeCmd, queryCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func printTree(cmd *cobra.Command, n *dom.Node, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Type {
	case dom.DocumentNode:
		cmd.Printf("%s#document %s\n", indent, n.SystemID)
	case dom.ElementNode:
		cmd.Printf("%s<%s>", indent, n.Name)
		for _, a := range n.Attrs {
			cmd.Printf(" %s=%q", a.Name.Raw, a.Value)
		}
		cmd.Println()
	case dom.TextNode:
		if s := strings.TrimSpace(n.Data); s != "" {
			cmd.Printf("%s%q\n", indent, s)
		}
	case dom.CommentNode:
		cmd.Printf("%s<!--%s-->\n", indent, n.Data)
	case dom.ProcessingInstructionNode:
		cmd.Printf("%s<?%s %s?>\n", indent, n.Name.Raw, n.Data)
	case dom.DoctypeNode:
		cmd.Printf("%s<!DOCTYPE %s>\n", indent, n.Name.Raw)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		printTree(cmd, c, depth+1)
	}
}

func printMatch(cmd *cobra.Command, n *dom.Node) {
	switch n.Type {
	case dom.ElementNode:
		cmd.Printf("<%s> %s\n", n.Name, strings.TrimSpace(n.InnerText()))
	case dom.TextNode, dom.CommentNode:
		cmd.Printf("%q\n", n.Data)
	default:
		cmd.Printf("%s\n", n.Name)
	}
}
