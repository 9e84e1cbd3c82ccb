package malloc

// Free blocks carry two link words immediately after the header: next
// then prev. Only free blocks have these; allocated blocks reuse that
// space for user data, which is why MinBlock must fit header + 2 links
// + footer.

func linkWordAddr(b block, offset int64) uintptr {
	return uintptr(b) + uintptr(Word) + uintptr(offset)
}

func nextLink(b block) block {
	return block(loadWord(linkWordAddr(b, 0)))
}

func setNextLink(b block, n block) {
	storeWord(linkWordAddr(b, 0), uint64(n))
}

func prevLink(b block) block {
	return block(loadWord(linkWordAddr(b, Word)))
}

func setPrevLink(b block, p block) {
	storeWord(linkWordAddr(b, Word), uint64(p))
}

// flists is the segregated free-list set from spec §4.3: heads[0] is
// the unsorted list, heads[1..62] hold exact small sizes, heads[63..74]
// hold power-of-two size bands. Each head is either 0 (empty) or the
// first block of a doubly-linked, unordered list threaded through the
// blocks' own link words.
type flists struct {
	heads [nlists]block
}

// insertUnsorted pushes b onto the front of the unsorted list (index
// 0), the only list Free and a just-split remainder ever land on
// directly; segregation into its exact-fit list happens later, when
// find_block drains the unsorted list.
func (f *flists) insertUnsorted(b block) {
	f.push(0, b)
}

// insertClass pushes b onto the front of its segregated list, per
// classOf(size(b)).
func (f *flists) insertClass(b block) {
	f.push(classOf(size(b)), b)
}

func (f *flists) push(idx int, b block) {
	head := f.heads[idx]
	setPrevLink(b, 0)
	setNextLink(b, head)
	if head != 0 {
		setPrevLink(head, b)
	}
	f.heads[idx] = b
}

// remove unlinks b from whichever list it currently sits on. idx must
// be the list b was inserted under (classOf(size(b)) for a segregated
// block, 0 for one still on the unsorted list); callers track this
// themselves since a block's size — and hence its class — can change
// between insertion and removal only via split/coalesce, both of which
// remove before resizing.
func (f *flists) remove(idx int, b block) {
	p, n := prevLink(b), nextLink(b)
	if p != 0 {
		setNextLink(p, n)
	} else {
		f.heads[idx] = n
	}
	if n != 0 {
		setPrevLink(n, p)
	}
	setNextLink(b, 0)
	setPrevLink(b, 0)
}

func (f *flists) popUnsorted() block {
	b := f.heads[0]
	if b == 0 {
		return 0
	}
	f.remove(0, b)
	return b
}
