package artifact

import "sort"

// Store maps artifact filenames to raw bytes for one project session.
// Entries arrive on upload or accept and leave through the retention
// operations; the zero value is not usable, construct with NewStore.
type Store struct {
	files map[string][]byte
}

// NewStore returns an empty artifact store.
func NewStore() *Store {
	return &Store{files: make(map[string][]byte)}
}

// Put stores raw bytes under the given filename, replacing any previous
// entry.
func (s *Store) Put(name string, data []byte) {
	s.files[name] = data
}

// Get returns the bytes stored under name.
func (s *Store) Get(name string) ([]byte, bool) {
	data, ok := s.files[name]
	return data, ok
}

// Delete removes a single entry.
func (s *Store) Delete(name string) {
	delete(s.files, name)
}

// Len returns the number of stored artifacts.
func (s *Store) Len() int {
	return len(s.files)
}

// Names returns every stored filename in sorted order.
func (s *Store) Names() []string {
	names := make([]string, 0, len(s.files))
	for name := range s.files {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// KeysForNum returns the parsed keys of every stored artifact belonging to
// the given item number.
func (s *Store) KeysForNum(num int) []Key {
	var keys []Key
	for name := range s.files {
		if key, ok := ParseName(name); ok && key.Num == num {
			keys = append(keys, key)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].Date != keys[j].Date {
			return keys[i].Date < keys[j].Date
		}
		return keys[i].Kind < keys[j].Kind
	})
	return keys
}

// DeleteNum removes every artifact belonging to the given item number.
func (s *Store) DeleteNum(num int) {
	for _, key := range s.KeysForNum(num) {
		s.Delete(key.Filename())
	}
}

// DeleteNumExcept removes every artifact belonging to the given item
// number except the text/audio pair dated keepDate.
func (s *Store) DeleteNumExcept(num int, keepDate string) {
	for _, key := range s.KeysForNum(num) {
		if key.Date == keepDate {
			continue
		}
		s.Delete(key.Filename())
	}
}
