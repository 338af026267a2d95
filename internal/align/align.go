// Package align сравнивает эталонную фразу с распознанной.
//
// Алгоритм - Ratcliff/Obershelp: ищется самый длинный общий непрерывный
// фрагмент, затем поиск рекурсивно повторяется слева и справа от него.
// Результат - коэффициент похожести и разбиение обеих строк на участки
// (equal, replace, delete, insert) без пропусков и пересечений.
package align

import "sort"

// Tag тип участка разбиения.
type Tag int

const (
	Equal Tag = iota
	Replace
	Delete
	Insert
)

// String возвращает имя тега.
func (t Tag) String() string {
	switch t {
	case Equal:
		return "equal"
	case Replace:
		return "replace"
	case Delete:
		return "delete"
	case Insert:
		return "insert"
	default:
		return "unknown"
	}
}

// Span участок разбиения. Индексы в рунах: a[I1:I2] эталона соответствует
// b[J1:J2] гипотезы. A и B - сами подстроки (пустые для insert/delete
// соответственно).
type Span struct {
	Tag    Tag
	I1, I2 int
	J1, J2 int
	A, B   string
}

// Result результат сравнения.
type Result struct {
	Ratio float64
	Spans []Span
}

// block совпадающий фрагмент: a[i:i+size] == b[j:j+size].
type block struct {
	i, j, size int
}

// Align сравнивает reference и hypothesis. Регистр не нормализуется.
func Align(reference, hypothesis string) Result {
	a := []rune(reference)
	b := []rune(hypothesis)

	blocks := matchingBlocks(a, b)

	matched := 0
	for _, bl := range blocks {
		matched += bl.size
	}

	return Result{
		Ratio: ratio(matched, len(a)+len(b)),
		Spans: opcodes(a, b, blocks),
	}
}

// Ratio возвращает только коэффициент похожести.
func Ratio(reference, hypothesis string) float64 {
	return Align(reference, hypothesis).Ratio
}

func ratio(matched, total int) float64 {
	if total == 0 {
		return 1.0
	}
	return 2.0 * float64(matched) / float64(total)
}

// longestMatch ищет самый длинный общий фрагмент в a[alo:ahi] и b[blo:bhi].
// При равной длине побеждает фрагмент, раньше начинающийся в a, затем в b.
func longestMatch(a []rune, b2j map[rune][]int, alo, ahi, blo, bhi int) block {
	best := block{i: alo, j: blo}

	// j2len[j] - длина совпадения, заканчивающегося на a[i-1] и b[j]
	j2len := map[int]int{}
	for i := alo; i < ahi; i++ {
		next := map[int]int{}
		for _, j := range b2j[a[i]] {
			if j < blo {
				continue
			}
			if j >= bhi {
				break
			}
			k := j2len[j-1] + 1
			next[j] = k
			if k > best.size {
				best = block{i: i - k + 1, j: j - k + 1, size: k}
			}
		}
		j2len = next
	}

	return best
}

// matchingBlocks возвращает упорядоченные непересекающиеся совпадения,
// соседние фрагменты склеены.
func matchingBlocks(a, b []rune) []block {
	b2j := make(map[rune][]int, len(b))
	for j, r := range b {
		b2j[r] = append(b2j[r], j)
	}

	type task struct{ alo, ahi, blo, bhi int }
	queue := []task{{0, len(a), 0, len(b)}}

	var found []block
	for len(queue) > 0 {
		t := queue[len(queue)-1]
		queue = queue[:len(queue)-1]

		m := longestMatch(a, b2j, t.alo, t.ahi, t.blo, t.bhi)
		if m.size == 0 {
			continue
		}
		found = append(found, m)
		if t.alo < m.i && t.blo < m.j {
			queue = append(queue, task{t.alo, m.i, t.blo, m.j})
		}
		if m.i+m.size < t.ahi && m.j+m.size < t.bhi {
			queue = append(queue, task{m.i + m.size, t.ahi, m.j + m.size, t.bhi})
		}
	}

	sort.Slice(found, func(x, y int) bool {
		if found[x].i != found[y].i {
			return found[x].i < found[y].i
		}
		return found[x].j < found[y].j
	})

	merged := make([]block, 0, len(found))
	for _, bl := range found {
		if n := len(merged); n > 0 {
			last := &merged[n-1]
			if last.i+last.size == bl.i && last.j+last.size == bl.j {
				last.size += bl.size
				continue
			}
		}
		merged = append(merged, bl)
	}

	return merged
}

// opcodes превращает совпадения в полное разбиение обеих строк.
func opcodes(a, b []rune, blocks []block) []Span {
	var spans []Span
	i, j := 0, 0

	// Сторож в конце закрывает хвосты обеих строк.
	blocks = append(blocks, block{i: len(a), j: len(b)})

	for _, bl := range blocks {
		var tag Tag
		switch {
		case i < bl.i && j < bl.j:
			tag = Replace
		case i < bl.i:
			tag = Delete
		case j < bl.j:
			tag = Insert
		default:
			tag = -1
		}
		if tag >= 0 {
			spans = append(spans, newSpan(a, b, tag, i, bl.i, j, bl.j))
		}

		i, j = bl.i+bl.size, bl.j+bl.size
		if bl.size > 0 {
			spans = append(spans, newSpan(a, b, Equal, bl.i, i, bl.j, j))
		}
	}

	return spans
}

func newSpan(a, b []rune, tag Tag, i1, i2, j1, j2 int) Span {
	return Span{
		Tag: tag,
		I1:  i1, I2: i2,
		J1: j1, J2: j2,
		A: string(a[i1:i2]),
		B: string(b[j1:j2]),
	}
}
