package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"slices"
	"strings"

	"github.com/stencilkit/stencil/internal/output"
	"github.com/stencilkit/stencil/internal/render"
)

// State tracks pipeline progress through one scaffolding run.
type State int

const (
	StateInit State = iota
	StateParametersPrepared
	StateTopDirCreated
	StateContextBuilt
	StateTreeWalked
	StateCleanedUp
	StateDone
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateInit:
		return "init"
	case StateParametersPrepared:
		return "parameters-prepared"
	case StateTopDirCreated:
		return "top-dir-created"
	case StateContextBuilt:
		return "context-built"
	case StateTreeWalked:
		return "tree-walked"
	case StateCleanedUp:
		return "cleaned-up"
	case StateDone:
		return "done"
	case StateFailed:
		return "failed"
	}
	return fmt.Sprintf("state(%d)", int(s))
}

var nameRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Pipeline sequences one scaffolding run: parameter validation, top directory
// creation, context building, the template walk, and cleanup. Single-threaded
// and run-to-completion; there is no rollback, a failure leaves prior writes
// on disk.
type Pipeline struct {
	opts    Options
	state   State
	topDir  string
	removal *RemovalSet
}

// NewPipeline creates a pipeline for the given invocation parameters.
func NewPipeline(opts Options) *Pipeline {
	return &Pipeline{opts: opts, state: StateInit, removal: &RemovalSet{}}
}

// State reports the current pipeline state.
func (p *Pipeline) State() State { return p.state }

// TopDir reports the target directory once the pipeline has created or
// verified it.
func (p *Pipeline) TopDir() string { return p.topDir }

// Run executes the full pipeline. Any error is fatal and leaves the pipeline
// in the failed state; temporary files queued for removal stay on disk when
// the run aborts before cleanup.
func (p *Pipeline) Run() error {
	fail := func(err error) error {
		p.state = StateFailed
		return err
	}

	if err := p.prepareParameters(); err != nil {
		return fail(err)
	}
	p.state = StateParametersPrepared

	descriptor, err := SelectStrategy(p.opts.Strategy)
	if err != nil {
		return fail(err)
	}

	if err := p.makeTopDir(); err != nil {
		return fail(err)
	}
	p.state = StateTopDirCreated

	render.Setup()
	ctx, err := buildContext(&p.opts, p.topDir, descriptor)
	if err != nil {
		return fail(err)
	}
	p.state = StateContextBuilt

	templateDir, err := resolveTemplate(p.opts.Template, &p.opts, p.removal)
	if err != nil {
		return fail(err)
	}

	manifest, err := loadManifest(templateDir)
	if err != nil {
		return fail(err)
	}
	manifest.apply(&p.opts)
	output.Verbose(fmt.Sprintf("Rendering %s template files with extensions: %s",
		p.opts.Kind, strings.Join(p.opts.Extensions, ", ")))

	w := &walker{
		opts:      &p.opts,
		topDir:    p.topDir,
		camelName: camelCaseName(p.opts.Name),
		ctx:       ctx,
		renderer:  render.New(),
		removal:   p.removal,
	}
	if err := w.walk(templateDir); err != nil {
		return fail(err)
	}
	p.state = StateTreeWalked

	if err := p.removal.Clean(); err != nil {
		output.Warning(fmt.Sprintf("Cleanup incomplete: %v", err))
	}
	p.state = StateCleanedUp

	p.state = StateDone
	return nil
}

// prepareParameters validates the name and fills option defaults.
func (p *Pipeline) prepareParameters() error {
	if p.opts.Name == "" {
		return &ValidationError{Name: p.opts.Name, Reason: "name is required"}
	}
	if !nameRe.MatchString(p.opts.Name) {
		return &ValidationError{
			Name:   p.opts.Name,
			Reason: "must start with a lowercase letter and contain only lowercase letters, digits and underscores",
		}
	}
	switch p.opts.Kind {
	case KindProject, KindApplication, KindFunction:
	default:
		return &ConfigurationError{Reason: fmt.Sprintf("unknown kind %q", p.opts.Kind)}
	}

	if p.opts.Strategy == 0 {
		p.opts.Strategy = StrategyLazySaving
	}
	if len(p.opts.Extensions) == 0 {
		p.opts.Extensions = []string{".go"}
	}
	p.opts.Extensions = normalizeExtensions(p.opts.Extensions)
	return nil
}

// makeTopDir creates or verifies the top-level directory. Without a target
// the directory cwd/name is created and must not exist yet; with a target
// the directory must already exist. This is the top-level overwrite-safety
// gate above the per-file conflict checks.
func (p *Pipeline) makeTopDir() error {
	if p.opts.TargetDir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			return err
		}
		p.topDir = filepath.Join(cwd, p.opts.Name)
		if err := os.Mkdir(p.topDir, 0o755); err != nil {
			if os.IsExist(err) {
				return &ConflictError{Path: p.topDir}
			}
			return err
		}
	} else {
		abs, err := filepath.Abs(expandHome(p.opts.TargetDir))
		if err != nil {
			return err
		}
		if _, err := os.Stat(abs); err != nil {
			return fmt.Errorf("destination directory %s does not exist, please create it first", abs)
		}
		p.topDir = abs
	}

	// Function packages live under a functions tree; refuse anything else
	// early, before the walk writes files.
	if p.opts.Kind == KindFunction && !hasPathSegment(p.topDir, "functions") {
		return fmt.Errorf("path for creating a function must contain a functions directory, got %s", p.topDir)
	}
	return nil
}

func hasPathSegment(path, segment string) bool {
	return slices.Contains(strings.Split(filepath.Clean(path), string(filepath.Separator)), segment)
}
