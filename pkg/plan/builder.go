// Package plan turns a parsed profile into an ordered list of concrete
// deployment actions.
//
// Build resolves every group's source and destination roots through the
// path resolver, expands directory entries into one action per file and
// guarantees that no two actions share a destination. All errors are
// returned before anything is written; Build only reads the filesystem.
package plan

import (
	"io/fs"
	"path/filepath"

	"github.com/arthur-debert/dotdeploy/pkg/errors"
	"github.com/arthur-debert/dotdeploy/pkg/filesystem"
	"github.com/arthur-debert/dotdeploy/pkg/paths"
	"github.com/arthur-debert/dotdeploy/pkg/profile"
	"github.com/arthur-debert/dotdeploy/pkg/types"
	"github.com/rs/zerolog"
)

// Builtin variables available to every path in a profile
const (
	VarHome     = "global:home"
	VarBasePath = "global:base_path"
)

// Options configures Build
type Options struct {
	// ProfileDir anchors the groups directory. Defaults to the directory of
	// the loaded profile; must be absolute.
	ProfileDir string

	// Resolver expands paths; defaults to the process resolver
	Resolver *paths.Resolver

	// FS is used for source existence checks and directory expansion
	FS types.FS

	Logger zerolog.Logger
}

type builder struct {
	fs       types.FS
	resolver *paths.Resolver
	logger   zerolog.Logger
	claims   map[string]errors.Claim
	actions  []types.Action
}

// Build resolves a profile into a Plan. Actions come out in profile order:
// groups, then entries, then the files of expanded directories sorted by
// name.
func Build(p *profile.Profile, opts Options) (*types.Plan, error) {
	if opts.FS == nil {
		opts.FS = filesystem.NewOS()
	}
	if opts.Resolver == nil {
		r, err := paths.NewOSResolver()
		if err != nil {
			return nil, err
		}
		opts.Resolver = r
	}
	if opts.ProfileDir == "" {
		opts.ProfileDir = p.Dir()
	}
	if !filepath.IsAbs(opts.ProfileDir) {
		return nil, errors.Newf(errors.ErrInvalidInput, "profile directory %q is not absolute", opts.ProfileDir)
	}

	home := opts.Resolver.Home()
	basePath, err := opts.Resolver.
		WithVariables(map[string]string{VarHome: home}).
		Resolve(p.Settings.GroupsDirectory, opts.ProfileDir)
	if err != nil {
		return nil, errors.WithContext(err, profile.SettingsSection, "groups_directory")
	}
	if err := requireDir(opts.FS, basePath); err != nil {
		return nil, errors.WithContext(err, profile.SettingsSection, "groups_directory")
	}

	resolver := opts.Resolver.WithVariables(map[string]string{
		VarHome:     home,
		VarBasePath: basePath,
	})
	b := &builder{
		fs:       opts.FS,
		resolver: resolver,
		logger:   opts.Logger.With().Str("component", "plan").Logger(),
		claims:   make(map[string]errors.Claim),
	}

	for _, g := range p.Groups {
		if err := b.addGroup(g, basePath, home); err != nil {
			return nil, err
		}
	}

	b.logger.Debug().
		Int("groups", len(p.Groups)).
		Int("actions", len(b.actions)).
		Str("basePath", basePath).
		Msg("Plan built")

	return types.NewPlan(b.actions), nil
}

func (b *builder) addGroup(g types.Group, basePath, home string) error {
	srcRoot, err := b.resolver.Resolve(g.Source, basePath)
	if err != nil {
		return errors.WithContext(err, g.Name, "")
	}
	destRoot, err := b.resolver.Resolve(g.Dest, home)
	if err != nil {
		return errors.WithContext(err, g.Name, "")
	}
	if srcRoot == destRoot {
		return errors.NewConfigValidation(g.Name, "", "source root and destination root are both "+srcRoot)
	}
	if err := requireDir(b.fs, srcRoot); err != nil {
		return errors.WithContext(err, g.Name, "")
	}

	logger := b.logger.With().Str("group", g.Name).Logger()
	logger.Debug().Str("source", srcRoot).Str("dest", destRoot).Msg("Resolved group roots")

	for _, e := range g.Entries {
		source := filepath.Join(srcRoot, e.Path)
		dest := filepath.Join(destRoot, e.Path)
		if e.HasDestOverride() {
			dest, err = b.resolver.Resolve(e.Dest, destRoot)
			if err != nil {
				return errors.WithContext(err, g.Name, e.Path)
			}
		}

		info, err := b.fs.Stat(source)
		if err != nil {
			if errors.IsNotExist(err) {
				return errors.NewSourceMissing(g.Name, e.Path, source)
			}
			return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat source %s", source).
				WithDetail(errors.DetailGroup, g.Name).
				WithDetail(errors.DetailEntry, e.Path)
		}

		if info.IsDir() {
			if err := b.expandDir(g, e, source, dest, "", []string{b.realPath(source)}); err != nil {
				return err
			}
			continue
		}

		if err := b.add(g, e.Path, source, dest, e.Kind); err != nil {
			return err
		}
	}

	return nil
}

// expandDir adds one action per file below dir. Subdirectories are only
// entered for recursive entries. ancestors holds the link-resolved paths of
// the directories being expanded, dir last; a symlink leading back into one
// of them is not followed.
func (b *builder) expandDir(g types.Group, e types.Entry, dir, destDir, rel string, ancestors []string) error {
	items, err := b.fs.ReadDir(dir)
	if err != nil {
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot read directory %s", dir).
			WithDetail(errors.DetailGroup, g.Name).
			WithDetail(errors.DetailEntry, e.Path)
	}

	if len(items) == 0 {
		b.logger.Debug().Str("group", g.Name).Str("dir", dir).Msg("Directory entry is empty")
	}

	for _, item := range items {
		name := item.Name()
		source := filepath.Join(dir, name)
		dest := filepath.Join(destDir, name)
		entryPath := filepath.Join(e.Path, rel, name)

		isDir := item.IsDir()
		isLink := item.Type()&fs.ModeSymlink != 0
		if isLink {
			info, err := b.fs.Stat(source)
			if err != nil {
				b.logger.Debug().Str("path", source).Msg("Skipping dangling symlink")
				continue
			}
			isDir = info.IsDir()
		} else if !isDir && !item.Type().IsRegular() {
			b.logger.Debug().Str("path", source).Msg("Skipping special file")
			continue
		}

		if isDir {
			if !e.Recursive {
				b.logger.Debug().Str("group", g.Name).Str("dir", source).Msg("Skipping subdirectory of non-recursive entry")
				continue
			}
			resolved := filepath.Join(ancestors[len(ancestors)-1], name)
			if isLink {
				resolved = b.realPath(source)
				if revisits(resolved, ancestors) {
					b.logger.Debug().Str("group", g.Name).Str("dir", source).Str("target", resolved).Msg("Skipping symlink back into an expanded directory")
					continue
				}
			}
			next := append(ancestors[:len(ancestors):len(ancestors)], resolved)
			if err := b.expandDir(g, e, source, dest, filepath.Join(rel, name), next); err != nil {
				return err
			}
			continue
		}

		if err := b.add(g, entryPath, source, dest, e.Kind); err != nil {
			return err
		}
	}

	return nil
}

// maxLinkHops bounds symlink resolution in realPath
const maxLinkHops = 40

// realPath follows symlinks at path until it reaches something that is not
// a link. Intermediate directories are taken as they are.
func (b *builder) realPath(path string) string {
	for i := 0; i < maxLinkHops; i++ {
		info, err := b.fs.Lstat(path)
		if err != nil || info.Mode()&fs.ModeSymlink == 0 {
			return path
		}
		target, err := b.fs.Readlink(path)
		if err != nil {
			return path
		}
		if !filepath.IsAbs(target) {
			target = filepath.Join(filepath.Dir(path), target)
		}
		path = filepath.Clean(target)
	}
	return path
}

// revisits reports whether dir is one of ancestors or contains one of them
func revisits(dir string, ancestors []string) bool {
	for _, a := range ancestors {
		if paths.ContainsPath(dir, a) {
			return true
		}
	}
	return false
}

func (b *builder) add(g types.Group, entry, source, dest string, kind types.Kind) error {
	if source == dest {
		return errors.NewConfigValidation(g.Name, entry, "source and destination are both "+source)
	}

	claim := errors.Claim{Group: g.Name, Entry: entry}
	if first, taken := b.claims[dest]; taken {
		return errors.NewDuplicateDestination(dest, first, claim)
	}
	b.claims[dest] = claim

	b.actions = append(b.actions, types.Action{
		Group:  g.Name,
		Entry:  entry,
		Source: source,
		Dest:   dest,
		Kind:   kind,
		Policy: g.Policy,
	})
	return nil
}

func requireDir(fsys types.FS, path string) error {
	info, err := fsys.Stat(path)
	if err != nil {
		if errors.IsNotExist(err) {
			return errors.NewSourceMissing("", "", path)
		}
		return errors.Wrapf(err, errors.ErrFileAccess, "cannot stat %s", path).
			WithDetail(errors.DetailPath, path)
	}
	if !info.IsDir() {
		return errors.Newf(errors.ErrSourceMissing, "%s is not a directory", path).
			WithDetail(errors.DetailPath, path)
	}
	return nil
}
