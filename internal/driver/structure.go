package driver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strconv"
	"time"

	"golang.org/x/sync/errgroup"

	"fire/internal/buildpipeline"
	"fire/internal/diag"
	"fire/internal/lexer"
	"fire/internal/namespace"
	"fire/internal/observ"
	"fire/internal/project"
	"fire/internal/resource"
	"fire/internal/source"
	"fire/internal/storage"
	"fire/internal/structure"
	"fire/internal/token"
	"fire/internal/trace"
)

// StructureRequest describes one structuring run. Zero fields fall back to
// fire.toml, then to built-in defaults.
type StructureRequest struct {
	Root           string
	Store          storage.Store // по умолчанию storage.NewAFS()
	Jobs           int           // <= 0: из fire.toml или GOMAXPROCS
	MaxDiagnostics int           // <= 0: из fire.toml или без ограничения
	CollectAll     bool          // собрать диагностики всех файлов
	Cache          *TokenCache   // nil: [build].cache откроет target/.fire-cache
	NoCache        bool
	Progress       buildpipeline.ProgressSink
	Logger         *slog.Logger
}

// FileResult is what structuring learned about one source file.
type FileResult struct {
	Path     namespace.Path
	Rel      string // "src/a/b.fire"
	Location string
	FileID   source.FileID
	Hash     uint64
	Tokens   []token.Token
	Stubs    []resource.Stub
	Cached   bool
}

// StructureResult is the outcome of Structure. On failure it still carries
// everything gathered so far; Table is frozen only on success.
type StructureResult struct {
	Root        string
	Manifest    *project.Manifest
	FileSet     *source.FileSet
	Files       []FileResult // в порядке обнаружения; без файлов, которые не дошли до вставки
	Table       *resource.Table
	Bag         *diag.Bag
	Timings     observ.Report
	Stages      buildpipeline.Timings
	Fingerprint uint64
}

// Structure validates the project at req.Root, discovers its sources, lexes
// and scans them in parallel and inserts every declaration stub into one
// Resource Table.
//
// The first fatal diagnostic stops scheduling of further files; files that
// are already being lexed finish and their results are dropped. With
// CollectAll every file is processed and all diagnostics end up in the bag.
// Diagnostics are returned as *diag.Diagnostic (the first one); I/O failures
// of the storage itself and cancellation come back as ordinary errors.
func Structure(ctx context.Context, req *StructureRequest) (*StructureResult, error) {
	if req == nil || req.Root == "" {
		return nil, errors.New("structure: project root is required")
	}
	log := req.Logger
	if log == nil {
		log = slog.Default()
	}
	store := req.Store
	if store == nil {
		store = storage.NewAFS()
	}

	timer := observ.NewTimer()
	ctx, span := trace.Start(ctx, trace.ScopeDriver, "structure")
	defer span.End("")

	res := &StructureResult{
		Root:    req.Root,
		FileSet: source.NewFileSet(),
		Table:   resource.NewTable(0),
		Bag:     diag.NewBag(req.MaxDiagnostics),
	}
	defer func() { res.Timings = timer.Report() }()

	// validate
	end := timer.Track("validate")
	emit(req.Progress, buildpipeline.Event{Stage: buildpipeline.StageValidate, Status: buildpipeline.StatusWorking})
	err := phase(ctx, "validate", func(ctx context.Context) error {
		return project.Validate(ctx, store, req.Root)
	})
	end("")
	if err != nil {
		emit(req.Progress, buildpipeline.Event{Stage: buildpipeline.StageValidate, Status: buildpipeline.StatusError, Err: err})
		return res, res.fail(err)
	}

	// fire.toml
	end = timer.Track("manifest")
	m, err := project.LoadManifest(ctx, store, req.Root)
	switch {
	case errors.Is(err, project.ErrNoManifest):
		m = &project.Manifest{}
		end("absent")
	case err != nil:
		end("error")
		return res, res.fail(err)
	default:
		end(m.Path)
	}
	res.Manifest = m
	opts := resolveOptions(req, m)
	if opts.maxDiagnostics != req.MaxDiagnostics {
		res.Bag = diag.NewBag(opts.maxDiagnostics)
	}
	cache := openCache(req, m, log)

	// discover
	end = timer.Track("discover")
	emit(req.Progress, buildpipeline.Event{Stage: buildpipeline.StageDiscover, Status: buildpipeline.StatusWorking})
	var files []project.SourceFile
	err = phase(ctx, "discover", func(ctx context.Context) error {
		var derr error
		files, derr = project.Discover(ctx, store, req.Root, project.DiscoverOptions{Exclude: m.Excluded})
		return derr
	})
	end(strconv.Itoa(len(files)) + " files")
	if err != nil {
		return res, res.fail(err)
	}
	emit(req.Progress, buildpipeline.Event{Stage: buildpipeline.StageDiscover, Status: buildpipeline.StatusDone})
	log.Debug("discovered sources", "root", req.Root, "files", len(files), "jobs", opts.jobs)

	// load + lex + scan + insert
	end = timer.Track("structure")
	s := &structurer{
		req:     req,
		opts:    opts,
		store:   store,
		cache:   cache,
		res:     res,
		log:     log,
		files:   files,
		results: make([]*FileResult, len(files)),
	}
	err = phase(ctx, "structure", s.run)
	end(fmt.Sprintf("%d resources", res.Table.Len()))
	for _, fr := range s.results {
		if fr != nil {
			res.Files = append(res.Files, *fr)
		}
	}
	if err != nil {
		return res, err
	}
	if res.Bag.HasErrors() {
		res.Bag.Sort()
		return res, res.Bag.First()
	}

	res.Table.Freeze()
	hashes := make([]uint64, len(res.Files))
	for i, f := range res.Files {
		hashes[i] = f.Hash
	}
	res.Fingerprint = project.Fingerprint(hashes...)
	span.WithExtra("resources", strconv.Itoa(res.Table.Len()))
	return res, nil
}

// fail records a diagnostic in the bag; other errors pass through.
func (r *StructureResult) fail(err error) error {
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		r.Bag.Add(d)
		return d
	}
	return err
}

func phase(ctx context.Context, name string, fn func(context.Context) error) error {
	ctx, span := trace.Start(ctx, trace.ScopePhase, name)
	err := fn(ctx)
	detail := ""
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)
	return err
}

func emit(sink buildpipeline.ProgressSink, ev buildpipeline.Event) {
	if sink != nil {
		sink.OnEvent(ev)
	}
}

type options struct {
	jobs           int
	maxDiagnostics int
	collectAll     bool
}

// resolveOptions: флаги важнее fire.toml, fire.toml важнее умолчаний.
func resolveOptions(req *StructureRequest, m *project.Manifest) options {
	o := options{
		jobs:           req.Jobs,
		maxDiagnostics: req.MaxDiagnostics,
		collectAll:     req.CollectAll || m.CollectAll,
	}
	if o.jobs <= 0 {
		o.jobs = m.Jobs
	}
	if o.jobs <= 0 {
		o.jobs = runtime.GOMAXPROCS(0)
	}
	if o.maxDiagnostics <= 0 {
		o.maxDiagnostics = m.MaxDiagnostics
	}
	return o
}

func openCache(req *StructureRequest, m *project.Manifest, log *slog.Logger) *TokenCache {
	if req.NoCache {
		return nil
	}
	if req.Cache != nil || !m.Cache {
		return req.Cache
	}
	if storage.IsURL(req.Root) {
		log.Warn("token cache needs a local project, disabled", "root", req.Root)
		return nil
	}
	dir := storage.Join(storage.Join(req.Root, project.TargetDir), ".fire-cache")
	c, err := OpenTokenCache(dir)
	if err != nil {
		log.Warn("token cache disabled", "dir", dir, "err", err)
		return nil
	}
	return c
}

type structurer struct {
	req     *StructureRequest
	opts    options
	store   storage.Store
	cache   *TokenCache
	res     *StructureResult
	log     *slog.Logger
	files   []project.SourceFile
	results []*FileResult // пишет только агрегатор
}

// outcome is what a worker hands to the aggregator.
type outcome struct {
	index   int
	file    FileResult
	diag    *diag.Diagnostic
	elapsed map[buildpipeline.Stage]time.Duration
}

// run schedules one task per file and funnels their outcomes through a single
// aggregator goroutine, the only writer of the Resource Table.
func (s *structurer) run(ctx context.Context) error {
	if len(s.files) == 0 {
		return nil
	}
	for _, f := range s.files {
		emit(s.req.Progress, buildpipeline.Event{File: f.Rel, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusQueued})
	}

	// stop отменяет планирование; ctx вызывающего — только его собственная отмена
	sched, stop := context.WithCancel(ctx)
	defer stop()

	outcomes := make(chan outcome)
	aggDone := make(chan struct{})
	go func() {
		defer close(aggDone)
		s.aggregate(outcomes, stop)
	}()

	var g errgroup.Group
	g.SetLimit(min(s.opts.jobs, len(s.files)))
	for i, f := range s.files {
		if sched.Err() != nil {
			emit(s.req.Progress, buildpipeline.Event{File: f.Rel, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusSkipped})
			continue
		}
		g.Go(func() error {
			// начатый файл доводим до конца даже после stop
			outcomes <- s.process(context.WithoutCancel(sched), i, f)
			return nil
		})
	}
	_ = g.Wait()
	close(outcomes)
	<-aggDone

	if err := ctx.Err(); err != nil {
		return err
	}
	return nil
}

// aggregate inserts stubs in discovery order, so which of two colliding
// declarations wins never depends on scheduling.
func (s *structurer) aggregate(outcomes <-chan outcome, stop context.CancelFunc) {
	pending := make(map[int]outcome)
	next := 0
	stopped := false

	halt := func(reason string) {
		if !stopped {
			stopped = true
			stop()
			s.log.Debug("structuring stopped", "reason", reason)
		}
	}
	// report возвращает true, если работу пора остановить
	report := func(d *diag.Diagnostic) bool {
		added := s.res.Bag.Add(d)
		if !s.opts.collectAll {
			return true
		}
		return !added
	}

	for out := range outcomes {
		if stopped {
			s.finish(out, buildpipeline.StatusSkipped, nil)
			continue
		}
		for stage, d := range out.elapsed {
			s.res.Stages.Add(stage, d)
		}
		if out.diag != nil {
			s.finish(out, buildpipeline.StatusError, out.diag)
			if report(out.diag) {
				halt(out.diag.Code.ID())
				continue
			}
		}
		pending[out.index] = out
		for !stopped {
			o, ok := pending[next]
			if !ok {
				break
			}
			delete(pending, next)
			next++
			if o.diag != nil {
				continue
			}
			if s.insert(o, report) {
				halt(diag.ResDuplicate.ID())
			}
		}
	}
}

// insert adds the stubs of one file; true means structuring must stop.
func (s *structurer) insert(o outcome, report func(*diag.Diagnostic) bool) bool {
	started := time.Now()
	emit(s.req.Progress, buildpipeline.Event{File: o.file.Rel, Stage: buildpipeline.StageInsert, Status: buildpipeline.StatusWorking})
	var failed *diag.Diagnostic
	for _, stub := range o.file.Stubs {
		err := s.res.Table.Insert(stub)
		if err == nil {
			continue
		}
		var d *diag.Diagnostic
		if !errors.As(err, &d) {
			// ErrFrozen: таблицу заморозили раньше времени, это ошибка драйвера
			panic(fmt.Errorf("structure: %w", err))
		}
		if failed == nil {
			failed = d
		}
		if report(d) {
			s.res.Stages.Add(buildpipeline.StageInsert, time.Since(started))
			s.finish(o, buildpipeline.StatusError, d)
			return true
		}
	}
	s.res.Stages.Add(buildpipeline.StageInsert, time.Since(started))
	fr := o.file
	s.results[o.index] = &fr
	if failed != nil {
		s.finish(o, buildpipeline.StatusError, failed)
	} else {
		s.finish(o, buildpipeline.StatusDone, nil)
	}
	return false
}

func (s *structurer) finish(o outcome, status buildpipeline.Status, d *diag.Diagnostic) {
	ev := buildpipeline.Event{File: o.file.Rel, Stage: buildpipeline.StageInsert, Status: status}
	if d != nil {
		ev.Err = d
	}
	emit(s.req.Progress, ev)
}

// process loads, lexes and scans one file. It runs on a worker goroutine and
// touches no shared state except the FileSet (internally locked) and the cache.
func (s *structurer) process(ctx context.Context, index int, f project.SourceFile) outcome {
	ctx, span := trace.Start(ctx, trace.ScopeFile, "file:"+f.Rel)
	out := outcome{
		index:   index,
		file:    FileResult{Path: f.Path, Rel: f.Rel, Location: f.Location},
		elapsed: make(map[buildpipeline.Stage]time.Duration, 3),
	}
	defer func() {
		detail := ""
		if out.diag != nil {
			detail = out.diag.Code.ID()
		}
		span.WithExtra("stubs", strconv.Itoa(len(out.file.Stubs))).End(detail)
	}()

	// load
	started := time.Now()
	emit(s.req.Progress, buildpipeline.Event{File: f.Rel, Stage: buildpipeline.StageLoad, Status: buildpipeline.StatusWorking})
	data, err := s.store.Read(ctx, f.Location)
	out.elapsed[buildpipeline.StageLoad] = time.Since(started)
	if err != nil {
		out.diag = readDiagnostic(f.Rel, err)
		return out
	}
	file := s.res.FileSet.Get(s.res.FileSet.AddSource(f.Rel, data))
	out.file.FileID = file.ID
	out.file.Hash = file.Hash

	// lex
	started = time.Now()
	toks, hit, err := s.cache.Get(file)
	if err != nil {
		s.log.Warn("token cache read failed", "file", f.Rel, "err", err)
	}
	if hit {
		out.file.Cached = true
		trace.Point(ctx, trace.ScopeFile, "cache-hit", f.Rel)
		emit(s.req.Progress, buildpipeline.Event{File: f.Rel, Stage: buildpipeline.StageLex, Status: buildpipeline.StatusCached})
	} else {
		emit(s.req.Progress, buildpipeline.Event{File: f.Rel, Stage: buildpipeline.StageLex, Status: buildpipeline.StatusWorking})
		toks, err = lexer.Tokenize(file, lexer.Options{Path: f.Rel})
		if err != nil {
			out.elapsed[buildpipeline.StageLex] = time.Since(started)
			out.diag = asDiagnostic(err, f.Rel)
			return out
		}
		if err := s.cache.Put(file, toks); err != nil {
			s.log.Warn("token cache write failed", "file", f.Rel, "err", err)
		}
	}
	out.elapsed[buildpipeline.StageLex] = time.Since(started)
	out.file.Tokens = toks

	// scan
	started = time.Now()
	emit(s.req.Progress, buildpipeline.Event{File: f.Rel, Stage: buildpipeline.StageScan, Status: buildpipeline.StatusWorking})
	out.file.Stubs = structure.Scan(f.Path, f.Rel, toks)
	out.elapsed[buildpipeline.StageScan] = time.Since(started)
	return out
}

func readDiagnostic(rel string, err error) *diag.Diagnostic {
	code := diag.IOFileUnreadable
	msg := fmt.Sprintf("cannot read file: %v", err)
	if errors.Is(err, storage.ErrNotFound) {
		code = diag.IOFileError
		msg = "file disappeared during the build"
	}
	return diag.NewError(code, source.Span{}, msg).At(rel, source.LineCol{})
}

func asDiagnostic(err error, rel string) *diag.Diagnostic {
	var d *diag.Diagnostic
	if errors.As(err, &d) {
		return d
	}
	return diag.NewError(diag.IOFileError, source.Span{}, err.Error()).At(rel, source.LineCol{})
}
