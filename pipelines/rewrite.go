package pipelines

import (
	"context"

	"github.com/reusee/phpedit/cmds"
	"github.com/reusee/phpedit/configs"
	"github.com/reusee/phpedit/logs"
	"github.com/reusee/phpedit/nodes"
	"github.com/reusee/phpedit/phpconfigs"
	"github.com/reusee/phpedit/sources"
	"github.com/reusee/phpedit/traversers"
	"github.com/reusee/phpedit/vars"
)

var foldFlag = cmds.Switch("-fold", "fold constant expressions when reprinting")

// Rewrite parses a source, lets visitors change a copy of the tree and
// prints the copy keeping the original formatting wherever the tree did not
// change.
type Rewrite func(ctx context.Context, src *sources.Source, visitors ...traversers.Visitor) (string, error)

func (Module) Rewrite(
	getOptions phpconfigs.GetLexerOptions,
	collect phpconfigs.CollectErrors,
	newPrinter phpconfigs.NewPrinter,
	verify Verify,
	logger logs.Logger,
) Rewrite {
	return func(ctx context.Context, src *sources.Source, visitors ...traversers.Visitor) (string, error) {
		options, err := getOptions()
		if err != nil {
			return "", err
		}
		// formatting is recovered from token positions
		options.Attributes |= nodes.CaptureComments | nodes.CaptureStartTokenPos | nodes.CaptureEndTokenPos
		parsed, err := parse(ctx, logger, options, bool(collect), src)
		if err != nil {
			return "", err
		}

		stmts, origins := traversers.CloneTree(parsed.Stmts)
		if len(visitors) > 0 {
			stmts = traversers.Traverse(stmts, visitors...)
		}

		p, err := newPrinter()
		if err != nil {
			return "", err
		}
		code, err := p.PrintFormatPreserving(stmts, parsed.Stmts, parsed.Tokens, origins)
		if err != nil {
			return "", err
		}
		if err := verify(ctx, code); err != nil {
			return "", err
		}
		return code, nil
	}
}

// Reprint rewrites a source with the configured rules, folding constants
// when enabled. Without rules it reproduces the source byte for byte.
type Reprint func(ctx context.Context, src *sources.Source) (string, error)

func (Module) Reprint(
	rewrite Rewrite,
	getRules GetRules,
	loader configs.Loader,
	logger logs.Logger,
) Reprint {
	fold := vars.FirstNonZero(*foldFlag, configs.First[bool](loader, "fold"))
	return func(ctx context.Context, src *sources.Source) (string, error) {
		rules, err := getRules()
		if err != nil {
			return "", err
		}
		var visitors []traversers.Visitor
		for _, rule := range rules {
			visitors = append(visitors, rule.New())
		}
		var folder *traversers.ConstantFolder
		if fold {
			folder = traversers.NewConstantFolder()
			visitors = append(visitors, folder)
		}
		code, err := rewrite(ctx, src, visitors...)
		if err != nil {
			return "", err
		}
		if folder != nil {
			logFolding(ctx, logger, folder)
		}
		return code, nil
	}
}

// Fold replaces constant expressions with their values.
type Fold func(ctx context.Context, src *sources.Source) (string, error)

func (Module) Fold(
	rewrite Rewrite,
	logger logs.Logger,
) Fold {
	return func(ctx context.Context, src *sources.Source) (string, error) {
		folder := traversers.NewConstantFolder()
		code, err := rewrite(ctx, src, folder)
		if err != nil {
			return "", err
		}
		logFolding(ctx, logger, folder)
		return code, nil
	}
}

func logFolding(ctx context.Context, logger logs.Logger, folder *traversers.ConstantFolder) {
	logger.DebugContext(ctx, "folded", "expressions", folder.Folded)
	for _, err := range folder.Errors {
		logger.WarnContext(ctx, "not folded", "error", err)
	}
}
