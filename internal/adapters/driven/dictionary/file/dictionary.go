package file

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/pelletier/go-toml/v2"

	"github.com/mindwell-labs/sanara/internal/core/ports/driven"
	"github.com/mindwell-labs/sanara/internal/logger"
)

// Ensure Dictionary implements the interface.
var _ driven.Dictionary = (*Dictionary)(nil)

// Dictionary file names under the dictionary directory.
const (
	therapeuticFile = "therapeutic.toml"
	culturalFile    = "cultural.toml"
	stopwordsFile   = "stopwords.toml"
	synonymsFile    = "synonyms.toml"
)

// therapeuticDoc is the on-disk shape of therapeutic.toml.
type therapeuticDoc struct {
	Terms    []string            `toml:"terms"`
	Synonyms map[string][]string `toml:"synonyms"`
}

// culturalDoc is the on-disk shape of cultural.toml. Synonyms are
// keyed by culture, then by term.
type culturalDoc struct {
	Terms    []string                       `toml:"terms"`
	Synonyms map[string]map[string][]string `toml:"synonyms"`
}

// stopwordsDoc is the on-disk shape of stopwords.toml.
type stopwordsDoc struct {
	Words []string `toml:"words"`
}

// synonymsDoc is the on-disk shape of synonyms.toml.
type synonymsDoc struct {
	Synonyms map[string][]string `toml:"synonyms"`
}

// tables is one immutable, fully-loaded dictionary snapshot. Lookups
// read a snapshot pointer, so a reload never tears a query mid-flight.
type tables struct {
	therapeuticTerms []string
	therapeuticSyns  map[string][]string
	culturalTerms    []string
	culturalSyns     map[string]map[string][]string
	stopwords        map[string]bool
	generalSyns      map[string][]string
}

// Dictionary loads the normalizer's term lists from user-editable TOML
// files with fallback to built-in defaults, and hot-reloads them when
// a file changes on disk.
type Dictionary struct {
	dir string

	mu     sync.RWMutex
	tables *tables

	watcher *fsnotify.Watcher
	done    chan struct{}
}

// New creates a dictionary rooted at dir. Missing files fall back to
// the built-in defaults; an empty dir serves defaults only, without a
// watcher.
func New(dir string) (*Dictionary, error) {
	d := &Dictionary{dir: dir, done: make(chan struct{})}
	d.tables = d.load()

	if dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating dictionary dir: %w", err)
		}
		watcher, err := fsnotify.NewWatcher()
		if err != nil {
			return nil, fmt.Errorf("creating dictionary watcher: %w", err)
		}
		if err := watcher.Add(dir); err != nil {
			watcher.Close()
			return nil, fmt.Errorf("watching dictionary dir: %w", err)
		}
		d.watcher = watcher
		go d.watch()
	}

	return d, nil
}

// Close stops the file watcher.
func (d *Dictionary) Close() error {
	close(d.done)
	if d.watcher != nil {
		return d.watcher.Close()
	}
	return nil
}

// TherapeuticTerms returns the therapeutic vocabulary.
func (d *Dictionary) TherapeuticTerms() []string {
	return d.snapshot().therapeuticTerms
}

// CulturalTerms returns the cultural vocabulary.
func (d *Dictionary) CulturalTerms() []string {
	return d.snapshot().culturalTerms
}

// Stopwords returns the stopword set.
func (d *Dictionary) Stopwords() map[string]bool {
	return d.snapshot().stopwords
}

// Synonyms returns general synonyms for a term.
func (d *Dictionary) Synonyms(term string) []string {
	return d.snapshot().generalSyns[strings.ToLower(term)]
}

// TherapeuticSynonyms returns therapeutic synonyms for a term.
func (d *Dictionary) TherapeuticSynonyms(term string) []string {
	return d.snapshot().therapeuticSyns[strings.ToLower(term)]
}

// CulturalSynonyms returns culture-specific synonyms for a term.
func (d *Dictionary) CulturalSynonyms(culture, term string) []string {
	byTerm := d.snapshot().culturalSyns[strings.ToLower(culture)]
	if byTerm == nil {
		return nil
	}
	return byTerm[strings.ToLower(term)]
}

func (d *Dictionary) snapshot() *tables {
	d.mu.RLock()
	defer d.mu.RUnlock()
	return d.tables
}

// watch reloads the tables whenever a dictionary file is written.
func (d *Dictionary) watch() {
	for {
		select {
		case <-d.done:
			return
		case event, ok := <-d.watcher.Events:
			if !ok {
				return
			}
			if !event.Op.Has(fsnotify.Write) && !event.Op.Has(fsnotify.Create) {
				continue
			}
			logger.Debug("Dictionary file changed: %s", event.Name)
			fresh := d.load()
			d.mu.Lock()
			d.tables = fresh
			d.mu.Unlock()
		case err, ok := <-d.watcher.Errors:
			if !ok {
				return
			}
			logger.Warn("Dictionary watcher error: %v", err)
		}
	}
}

// load builds a snapshot from the files on disk, falling back to the
// built-in defaults per file.
func (d *Dictionary) load() *tables {
	t := &tables{
		therapeuticTerms: defaultTherapeuticTerms,
		therapeuticSyns:  defaultTherapeuticSynonyms,
		culturalTerms:    defaultCulturalTerms,
		culturalSyns:     defaultCulturalSynonyms,
		stopwords:        defaultStopwords,
		generalSyns:      defaultGeneralSynonyms,
	}
	if d.dir == "" {
		return t
	}

	var tdoc therapeuticDoc
	if readTOML(filepath.Join(d.dir, therapeuticFile), &tdoc) {
		if len(tdoc.Terms) > 0 {
			t.therapeuticTerms = lowerAll(tdoc.Terms)
		}
		if len(tdoc.Synonyms) > 0 {
			t.therapeuticSyns = lowerKeys(tdoc.Synonyms)
		}
	}

	var cdoc culturalDoc
	if readTOML(filepath.Join(d.dir, culturalFile), &cdoc) {
		if len(cdoc.Terms) > 0 {
			t.culturalTerms = lowerAll(cdoc.Terms)
		}
		if len(cdoc.Synonyms) > 0 {
			syns := make(map[string]map[string][]string, len(cdoc.Synonyms))
			for culture, byTerm := range cdoc.Synonyms {
				syns[strings.ToLower(culture)] = lowerKeys(byTerm)
			}
			t.culturalSyns = syns
		}
	}

	var sdoc stopwordsDoc
	if readTOML(filepath.Join(d.dir, stopwordsFile), &sdoc) && len(sdoc.Words) > 0 {
		words := make(map[string]bool, len(sdoc.Words))
		for _, w := range sdoc.Words {
			words[strings.ToLower(w)] = true
		}
		t.stopwords = words
	}

	var gdoc synonymsDoc
	if readTOML(filepath.Join(d.dir, synonymsFile), &gdoc) && len(gdoc.Synonyms) > 0 {
		t.generalSyns = lowerKeys(gdoc.Synonyms)
	}

	return t
}

// readTOML unmarshals a TOML file into out, reporting whether the file
// existed and parsed. Parse failures are logged and treated as absent
// so a bad edit never takes the defaults down with it.
func readTOML(path string, out any) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		if !os.IsNotExist(err) {
			logger.Warn("Reading dictionary file %s: %v", path, err)
		}
		return false
	}
	if err := toml.Unmarshal(data, out); err != nil {
		logger.Warn("Parsing dictionary file %s: %v", path, err)
		return false
	}
	return true
}

func lowerAll(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToLower(v)
	}
	return out
}

func lowerKeys(m map[string][]string) map[string][]string {
	out := make(map[string][]string, len(m))
	for k, v := range m {
		out[strings.ToLower(k)] = v
	}
	return out
}
