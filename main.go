package main

import (
	"context"
	"fmt"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"filebrowser/internal/config"
	"filebrowser/internal/constants"
	"filebrowser/internal/descriptor"
	"filebrowser/internal/fileinfo"
	"filebrowser/internal/keymanager"
	"filebrowser/internal/macro"
	"filebrowser/internal/notify"
	"filebrowser/internal/picker"
	"filebrowser/internal/project"
	"filebrowser/internal/resources"
	"filebrowser/internal/secret"
	"filebrowser/internal/settings"
	"filebrowser/internal/ui"
)

// Flags holds the global command line flags.
type Flags struct {
	LogLevel   string
	ConfigPath string
	ProjectDir string
	ModuleDir  string
}

func envvars(names ...string) cli.ValueSourceChain {
	prefixed := make([]string, len(names))
	for i, n := range names {
		prefixed[i] = constants.EnvPrefix + "_" + n
	}
	return cli.EnvVars(prefixed...)
}

// AssetPicker is the main window: a resource root picker and an image picker
// sharing one project's settings.
type AssetPicker struct {
	window        fyne.Window
	config        *config.Config
	configManager *config.Manager
	project       *project.Project
	module        *project.Module
	settings      *settings.Store

	rootPicker  *picker.Controller
	imagePicker *picker.Controller
	selection   *widget.Label
	recent      *widget.List
}

// NewAssetPicker builds the window and wires every picker collaborator.
func NewAssetPicker(a fyne.App, flags *Flags, cfg *config.Config, cfgManager *config.Manager) (*AssetPicker, error) {
	macros, err := macro.NewService(cfg.Macros)
	if err != nil {
		return nil, err
	}
	isImage, err := descriptor.NewImagePredicate(cfg.Picker.ImagePatterns)
	if err != nil {
		return nil, err
	}
	custom, err := descriptor.CompileFilter(cfg.Picker.CustomFilter)
	if err != nil {
		return nil, err
	}
	defaults := descriptor.NewDefaults(isImage)
	imageDesc := defaults.ImageFilesFolder.WithFilter(custom).WithShowHidden(cfg.Picker.ShowHidden())
	rootDesc := defaults.ResourceDir.WithShowHidden(cfg.Picker.ShowHidden())

	win := a.NewWindow(constants.ApplicationTitle)

	store, err := secret.NewKeyringStore()
	if err != nil {
		log.Warn().Err(err).Msg("keyring unavailable, SMB credentials kept in memory")
		store = secret.NewMemoryStore()
	}
	prompt := ui.NewSMBCredentialsProvider(win)
	keys := fileinfo.NewKeychain(store, prompt)
	prompt.OnCredentials = keys.Put
	finder := fileinfo.NewPortableFinder(keys)
	fileinfo.SetDefaultFinder(finder)

	proj := project.New(flags.ProjectDir)
	mod := proj.Module(flags.ModuleDir)
	scope := macros.ForProject(proj, mod)

	scanner, err := resources.NewScanner(cfg.Picker.ResourceGlobs, finder)
	if err != nil {
		return nil, err
	}

	ap := &AssetPicker{
		window:        win,
		config:        cfg,
		configManager: cfgManager,
		project:       proj,
		module:        mod,
		settings:      settings.NewStore(a.Preferences(), proj, scope, finder),
	}
	ap.settings.OnSaved = ap.rememberRecent

	host := picker.Host{
		Finder:    finder,
		Macros:    scope,
		Chooser:   ui.NewFyneChooser(win, finder),
		Dialogs:   ui.NewResourcesDialog(win, keymanager.NewKeyManager(), scope),
		Resources: scanner,
	}
	ap.rootPicker = picker.New(rootDesc, host)
	ap.imagePicker = picker.New(imageDesc, host)
	ap.imagePicker.Init(proj, ap.settings)

	ap.rootPicker.SetSelectionListener(notify.ListenerFunc(func(f fileinfo.Entry) {
		ap.settings.SaveResourceRoot(f.CanonicalPath())
	}))
	ap.imagePicker.SetSelectionListener(notify.ListenerFunc(ap.imageSelected))

	ap.buildContent(finder)
	return ap, nil
}

func (ap *AssetPicker) buildContent(finder fileinfo.Finder) {
	rootField := ui.NewFileBrowserField(ap.rootPicker, ap.window, finder)
	imageField := ui.NewFileBrowserField(ap.imagePicker, ap.window, finder)
	ui.InstallDropHandler(ap.window, rootField, imageField)

	ap.selection = widget.NewLabel("")
	ap.selection.Wrapping = fyne.TextWrapBreak
	ap.recent = widget.NewList(
		func() int { return len(ap.config.Recent.Entries) },
		func() fyne.CanvasObject { return widget.NewLabel("") },
		func(id widget.ListItemID, obj fyne.CanvasObject) {
			obj.(*widget.Label).SetText(ap.config.Recent.Entries[id])
		},
	)

	form := widget.NewForm(
		widget.NewFormItem("Resource root", rootField),
		widget.NewFormItem("Images", imageField),
		widget.NewFormItem("Selected", ap.selection),
	)
	header := widget.NewLabel(fmt.Sprintf("%s (%s)", ap.project.Name, ap.module.Dir))
	header.TextStyle.Bold = true

	ap.window.SetContent(container.NewBorder(
		container.NewVBox(header, form, widget.NewLabel("Recent folders")),
		nil, nil, nil,
		ap.recent,
	))
	ap.window.Resize(fyne.NewSize(float32(ap.config.Window.Width), float32(ap.config.Window.Height)))
}

// Start resolves the resource root; it must run once the window is up so
// the folder choice dialog can show.
func (ap *AssetPicker) Start() {
	if err := ap.rootPicker.InitWithResourceRoot(ap.project, ap.module, ap.settings); err != nil {
		ui.ShowErrorDialog(ap.window, "resource root", err)
	}
	log.Debug().Str("state", ap.rootPicker.ResourceRootState().String()).Msg("resource root flow")
}

func (ap *AssetPicker) imageSelected(f fileinfo.Entry) {
	log.Info().Str("path", f.CanonicalPath()).Bool("dir", f.IsDir()).Msg("image selection")
	ap.selection.SetText(f.CanonicalPath())
}

func (ap *AssetPicker) rememberRecent(path string) {
	ap.config.AddRecent(recentFolder(path))
	if err := ap.configManager.Save(ap.config); err != nil {
		log.Warn().Err(err).Msg("failed to save recent folders")
	}
	ap.recent.Refresh()
}

// recentFolder is the folder a picked path is remembered under: the path
// itself for folders, else its parent.
func recentFolder(path string) string {
	if fi, err := fileinfo.StatPortable(path); err == nil && fi.IsDir() {
		return path
	}
	return fileinfo.ParentPath(path)
}

func run(flags *Flags) error {
	cfgManager := config.NewManager(flags.ConfigPath)
	cfg, err := cfgManager.Load()
	if err != nil {
		return err
	}

	a := app.NewWithID(constants.ApplicationID)
	ap, err := NewAssetPicker(a, flags, cfg, cfgManager)
	if err != nil {
		return err
	}
	a.Lifecycle().SetOnStarted(ap.Start)
	ap.window.ShowAndRun()
	return nil
}

func main() {
	flags := &Flags{}

	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cmd := &cli.Command{
		Name:  constants.ApplicationName,
		Usage: "pick resource folders and image assets for a project",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:        "log-level",
				Aliases:     []string{"l"},
				Usage:       "set the logging verbosity level",
				Value:       "info",
				Sources:     envvars("LOG_LEVEL"),
				Destination: &flags.LogLevel,
			},
			&cli.StringFlag{
				Name:        "config",
				Aliases:     []string{"c"},
				Usage:       "path to the configuration file (default: OS config dir)",
				Sources:     envvars("CONFIG_PATH"),
				Destination: &flags.ConfigPath,
			},
			&cli.StringFlag{
				Name:        "project",
				Aliases:     []string{"p"},
				Usage:       "project base directory",
				Value:       ".",
				Sources:     envvars("PROJECT"),
				Destination: &flags.ProjectDir,
			},
			&cli.StringFlag{
				Name:        "module",
				Aliases:     []string{"m"},
				Usage:       "module directory relative to the project",
				Sources:     envvars("MODULE"),
				Destination: &flags.ModuleDir,
			},
		},
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			level, err := zerolog.ParseLevel(flags.LogLevel)
			if err != nil {
				return ctx, fmt.Errorf("failed to parse log level: %w", err)
			}
			log.Logger = log.Level(level)

			log.Debug().
				Str("log-level", flags.LogLevel).
				Str("config", flags.ConfigPath).
				Str("project", flags.ProjectDir).
				Str("module", flags.ModuleDir).
				Msg("global flags")
			return ctx, nil
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			if info, err := os.Stat(flags.ProjectDir); err != nil {
				return fmt.Errorf("project directory: %w", err)
			} else if !info.IsDir() {
				return fmt.Errorf("project directory %q is not a directory", flags.ProjectDir)
			}
			return run(flags)
		},
	}

	if err := cmd.Run(context.Background(), os.Args); err != nil {
		log.Fatal().Err(err).Msg("filebrowser failed")
	}
}
