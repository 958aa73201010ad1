// Package layout maps the folders of an ODK application onto the local
// filesystem and lists the files each manifest scope covers.
//
// Manifest filenames are relative to the config folder and always use
// forward slashes, e.g. "assets/app.properties" or
// "tables/census/properties.csv".
package layout

import (
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"golang.org/x/text/unicode/norm"
)

const (
	configDirName    = "config"
	dataDirName      = "data"
	assetsDirName    = "assets"
	tablesDirName    = "tables"
	csvDirName       = "csv"
	instancesDirName = "instances"

	tablesInitFileName = "tables.init"
	propertiesFileName = "properties.csv"
	definitionFileName = "definition.csv"

	// TempSuffix ends the names of partially written downloads.
	TempSuffix = ".tmp"
)

var (
	// ErrOutsideApp is returned for paths escaping the application folder.
	ErrOutsideApp = errors.New("path is outside the application folder")
	// ErrInvalidTableID is returned for table ids that cannot name a folder.
	ErrInvalidTableID = errors.New("invalid table id")
	// ErrInvalidRowID is returned for empty row ids.
	ErrInvalidRowID = errors.New("invalid row id")
)

var (
	tableIDPattern  = regexp.MustCompile(`^\p{L}\p{M}*(\p{L}\p{M}*|\p{Nd}|_)+$`)
	unsafeRowIDRune = regexp.MustCompile(`[\p{P}\p{Z}]`)
)

// App is the on-disk layout of one application folder.
type App struct {
	root string
}

// New returns the layout rooted at root.
func New(root string) *App {
	return &App{root: filepath.Clean(root)}
}

func (a *App) Root() string            { return a.root }
func (a *App) ConfigDir() string       { return filepath.Join(a.root, configDirName) }
func (a *App) AssetsDir() string       { return filepath.Join(a.ConfigDir(), assetsDirName) }
func (a *App) AssetsCSVDir() string    { return filepath.Join(a.AssetsDir(), csvDirName) }
func (a *App) TablesConfigDir() string { return filepath.Join(a.ConfigDir(), tablesDirName) }
func (a *App) TablesInitFile() string  { return filepath.Join(a.AssetsDir(), tablesInitFileName) }
func (a *App) DataDir() string         { return filepath.Join(a.root, dataDirName) }

// ValidateTableID checks that id starts with a letter and holds only
// letters, digits and underscores.
func ValidateTableID(id string) error {
	if !tableIDPattern.MatchString(id) {
		return fmt.Errorf("%w: %q", ErrInvalidTableID, id)
	}
	return nil
}

// TableConfigDir returns config/tables/<tableID>.
func (a *App) TableConfigDir(tableID string) (string, error) {
	if err := ValidateTableID(tableID); err != nil {
		return "", err
	}
	return filepath.Join(a.TablesConfigDir(), tableID), nil
}

// TablePropertiesFile returns the config-relative name of the table's
// properties.csv.
func TablePropertiesFile(tableID string) string {
	return path.Join(tablesDirName, tableID, propertiesFileName)
}

// TableDefinitionFile returns the config-relative name of the table's
// definition.csv.
func TableDefinitionFile(tableID string) string {
	return path.Join(tablesDirName, tableID, definitionFileName)
}

// InstanceDir returns data/tables/<tableID>/instances/<rowID>, with
// punctuation and separators in rowID replaced by underscores.
func (a *App) InstanceDir(tableID, rowID string) (string, error) {
	if err := ValidateTableID(tableID); err != nil {
		return "", err
	}
	if rowID == "" {
		return "", ErrInvalidRowID
	}
	safe := unsafeRowIDRune.ReplaceAllString(rowID, "_")
	return filepath.Join(a.DataDir(), tablesDirName, tableID, instancesDirName, safe), nil
}

// RowPathFile resolves a row-path column value to the local file it names.
func (a *App) RowPathFile(tableID, rowID, rowPath string) (string, error) {
	dir, err := a.InstanceDir(tableID, rowID)
	if err != nil {
		return "", err
	}

	rel := strings.TrimPrefix(NormalizeName(rowPath), "/")
	if rel == "" {
		return "", fmt.Errorf("%w: empty row path", ErrOutsideApp)
	}

	// Older rows store the path from the application folder.
	instanceURI := filepath.ToSlash(strings.TrimPrefix(dir, a.root+string(filepath.Separator)))
	if strings.HasPrefix(rel, instanceURI+"/") {
		return a.within(a.root, rel)
	}
	return a.within(dir, rel)
}

// ConfigFile resolves a config-relative manifest filename.
func (a *App) ConfigFile(name string) (string, error) {
	return a.within(a.ConfigDir(), NormalizeName(name))
}

// ConfigRelative converts an absolute path under the config folder into
// its manifest filename.
func (a *App) ConfigRelative(abs string) (string, error) {
	rel, err := filepath.Rel(a.ConfigDir(), abs)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") {
		return "", fmt.Errorf("%w: %s", ErrOutsideApp, abs)
	}
	return NormalizeName(filepath.ToSlash(rel)), nil
}

func (a *App) within(base, rel string) (string, error) {
	full := filepath.Join(base, filepath.FromSlash(rel))
	if full != base && !strings.HasPrefix(full, base+string(filepath.Separator)) {
		return "", fmt.Errorf("%w: %s", ErrOutsideApp, rel)
	}
	return full, nil
}

// NormalizeName collapses duplicate slashes, trims surrounding slashes and
// converts the name to Unicode NFC so names from different platforms compare
// equal.
func NormalizeName(name string) string {
	name = strings.ReplaceAll(name, "\\", "/")

	var b strings.Builder
	prevSlash := false
	for _, r := range name {
		if r == '/' {
			if prevSlash {
				continue
			}
			prevSlash = true
		} else {
			prevSlash = false
		}
		b.WriteRune(r)
	}

	return norm.NFC.String(strings.Trim(b.String(), "/"))
}

// AppLevelFiles lists the manifest filenames of the app scope: everything
// under config except config/tables, config/assets/csv and
// config/assets/tables.init. A missing config folder yields no files.
func (a *App) AppLevelFiles() ([]string, error) {
	skipDirs := map[string]bool{
		a.TablesConfigDir(): true,
		a.AssetsCSVDir():    true,
	}
	skipFiles := map[string]bool{a.TablesInitFile(): true}

	return a.collect(a.ConfigDir(), func(abs string, isDir bool) bool {
		if isDir {
			return skipDirs[abs]
		}
		return skipFiles[abs]
	})
}

// TableLevelFiles lists the manifest filenames of one table's scope: the
// files under config/tables/<tableID> and the config/assets/csv entries
// named after the table (<tableID>.csv, <tableID>.<qualifier>.csv and the
// <tableID>/ attachment folder).
func (a *App) TableLevelFiles(tableID string) ([]string, error) {
	tableDir, err := a.TableConfigDir(tableID)
	if err != nil {
		return nil, err
	}

	files, err := a.collect(tableDir, nil)
	if err != nil {
		return nil, err
	}

	csvFiles, err := a.collect(a.AssetsCSVDir(), nil)
	if err != nil {
		return nil, err
	}

	prefix := path.Join(assetsDirName, csvDirName) + "/"
	for _, name := range csvFiles {
		first := strings.SplitN(strings.TrimPrefix(name, prefix), "/", 2)[0]
		if first == tableID || strings.SplitN(first, ".", 2)[0] == tableID {
			files = append(files, name)
		}
	}
	return files, nil
}

// collect walks base and returns config-relative names of regular files.
// skip is consulted for every entry; hidden entries, symlinks and partial
// downloads are never listed.
func (a *App) collect(base string, skip func(abs string, isDir bool) bool) ([]string, error) {
	info, err := os.Stat(base)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", base, err)
	}
	if !info.IsDir() {
		return nil, nil
	}

	var names []string
	err = filepath.WalkDir(base, func(abs string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if abs == base {
			return nil
		}

		if strings.HasPrefix(d.Name(), ".") {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if skip != nil && skip(abs, d.IsDir()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() || strings.HasSuffix(d.Name(), TempSuffix) {
			return nil
		}

		name, err := a.ConfigRelative(abs)
		if err != nil {
			return err
		}
		names = append(names, name)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("list files under %s: %w", base, err)
	}
	return names, nil
}
