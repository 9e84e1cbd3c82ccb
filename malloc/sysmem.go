package malloc

import "github.com/cloudfoundry/gosigar"

// defaultReserve sizes the default package-level Arena's reservation
// off the machine's actual RAM rather than the flat Maxarenasize
// ceiling, the same way the teacher sizes its own default arenas off
// sigar.Mem (llrb/config.go, bogn/config.go): reserving a full
// terabyte up front on a machine with a fraction of that installed is
// wasteful even though osBreaker never actually commits memory it
// doesn't Sbrk into.
func defaultReserve() int64 {
	mem := sigar.Mem{}
	if err := mem.Get(); err != nil {
		return Maxarenasize
	}
	quarter := int64(mem.Total / 4)
	if quarter <= 0 || quarter > Maxarenasize {
		return Maxarenasize
	}
	return quarter
}
