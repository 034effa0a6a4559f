package provider

import "sort"

// A runqueue holds pending tasks sorted by path.
// Tasks with the same path keep their arrival order (FIFO).
type runqueue struct {
	front, back []*Task
}

func (q *runqueue) Empty() bool {
	return len(q.front) == 0
}

func (q *runqueue) Push(t *Task) {
	nf, nb := len(q.front), len(q.back)

	n := nf + nb

	i := sort.Search(n, func(i int) bool {
		if i < nf {
			return t.path < q.front[i].path
		}
		return t.path < q.back[i-nf].path
	})

	if n == cap(q.back) {
		s := append(q.back[:n], nil)[:0]

		if i < nf {
			s = append(s, q.front[:i]...)
			s = append(s, t)
			s = append(s, q.front[i:]...)
			s = append(s, q.back...)
		} else {
			i -= nf
			s = append(s, q.front...)
			s = append(s, q.back[:i]...)
			s = append(s, t)
			s = append(s, q.back[i:]...)
		}

		q.front, q.back = s, s[:0]

		return
	}

	if nf < cap(q.front) {
		s := q.front[:nf+1]
		copy(s[i+1:], s[i:])
		s[i] = t
		q.front = s
		return
	}

	if i < nf {
		s := q.front
		u := s[nf-1]
		copy(s[i+1:], s[i:])
		s[i] = t
		t = u
		i = nf
	}

	i -= nf

	s := q.back[:nb+1]
	copy(s[i+1:], s[i:])
	s[i] = t
	q.back = s
}

func (q *runqueue) Pop() *Task {
	t := q.front[0]
	q.front[0] = nil

	if len(q.front) > 1 {
		q.front = q.front[1:]
	} else {
		q.front, q.back = q.back, q.back[:0]
	}

	return t
}
