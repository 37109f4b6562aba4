// Copyright 2014-2022 Ulrich Kunitz. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package randtxt generates pseudo-random lorem ipsum text. The text is
// used as benchmark and test data for the compressor; its byte
// distribution resembles natural language text.
package randtxt

import (
	"bytes"
	"math/rand"
	"sort"
)

var loremWords = []string{
	"lorem", "ipsum", "dolor", "sit", "amet", "consectetur",
	"adipiscing", "elit", "sed", "do", "eiusmod", "tempor",
	"incididunt", "ut", "labore", "et", "dolore", "magna", "aliqua",
	"enim", "ad", "minim", "veniam", "quis", "nostrud", "exercitation",
	"ullamco", "laboris", "nisi", "aliquip", "ex", "ea", "commodo",
	"consequat", "duis", "aute", "irure", "in", "reprehenderit",
	"voluptate", "velit", "esse", "cillum", "eu", "fugiat", "nulla",
	"pariatur", "excepteur", "sint", "occaecat", "cupidatat", "non",
	"proident", "sunt", "culpa", "qui", "officia", "deserunt", "mollit",
	"anim", "id", "est", "laborum", "perspiciatis", "unde", "omnis",
	"iste", "natus", "error", "voluptatem", "accusantium", "doloremque",
	"laudantium", "totam", "rem", "aperiam", "eaque", "ipsa", "quae",
	"ab", "illo", "inventore", "veritatis", "quasi", "architecto",
	"beatae", "vitae", "dicta", "explicabo", "nemo", "ipsam", "quia",
	"voluptas", "aspernatur", "aut", "odit", "fugit", "magni",
	"dolores", "eos", "ratione", "sequi", "nesciunt", "neque", "porro",
	"quisquam", "dolorem", "adipisci", "numquam", "eius", "modi",
	"tempora", "incidunt", "magnam", "quaerat",
}

// prob stores a word and its cumulative probability.
type prob struct {
	s string
	p float64
}

type probs []prob

// searchProb returns the index of the first entry with a cumulative
// probability of at least p.
func (s probs) searchProb(p float64) int {
	i := sort.Search(len(s), func(k int) bool { return s[k].p >= p })
	if i >= len(s) {
		i = len(s) - 1
	}
	return i
}

// cdf computes the cumulative distribution function for the n weights
// provided by p.
func cdf(n int, p func(i int) prob) probs {
	prs := make(probs, n)
	sum := 0.0
	for i := range prs {
		pr := p(i)
		sum += pr.p
		prs[i] = pr
	}
	q := 1.0 / sum
	x := 0.0
	for i, pr := range prs {
		x += pr.p * q
		if x > 1.0 {
			x = 1.0
		}
		prs[i].p = x
	}
	return prs
}

// wordCDF gives the words a Zipf-like distribution.
var wordCDF = cdf(len(loremWords), func(i int) prob {
	return prob{loremWords[i], 1.0 / float64(i+1)}
})

// Sentence and paragraph sizes.
const (
	minWords           = 4
	maxWords           = 16
	paragraphSentences = 10
)

// LoremReader produces an endless stream of lorem ipsum paragraphs. Each
// paragraph consists of ten sentences and is terminated by a newline.
type LoremReader struct {
	rnd *rand.Rand
	buf bytes.Buffer
}

// NewLoremReader creates a new reader using the given random source.
func NewLoremReader(src rand.Source) *LoremReader {
	return &LoremReader{rnd: rand.New(src)}
}

func (r *LoremReader) word() string {
	return wordCDF[wordCDF.searchProb(r.rnd.Float64())].s
}

// appendSentence appends a capitalized sentence terminated by a period.
func (r *LoremReader) appendSentence(p []byte) []byte {
	n := minWords + r.rnd.Intn(maxWords-minWords+1)
	for i := 0; i < n; i++ {
		w := r.word()
		if i == 0 {
			p = append(p, w[0]-'a'+'A')
			p = append(p, w[1:]...)
			continue
		}
		if r.rnd.Intn(12) == 0 {
			p = append(p, ',')
		}
		p = append(p, ' ')
		p = append(p, w...)
	}
	return append(p, '.')
}

// Sentence returns a single sentence.
func (r *LoremReader) Sentence() string {
	return string(r.appendSentence(nil))
}

// AppendParagraph appends a paragraph including the terminating newline
// to p.
func (r *LoremReader) AppendParagraph(p []byte) []byte {
	for i := 0; i < paragraphSentences; i++ {
		if i > 0 {
			p = append(p, ' ')
		}
		p = r.appendSentence(p)
	}
	return append(p, '\n')
}

// Read fills p with text. It never returns an error.
func (r *LoremReader) Read(p []byte) (n int, err error) {
	for n < len(p) {
		if r.buf.Len() == 0 {
			r.buf.Write(r.AppendParagraph(nil))
		}
		k, _ := r.buf.Read(p[n:])
		n += k
	}
	return n, nil
}

// Paragraphs returns n paragraphs of lorem ipsum text generated from the
// given seed.
func Paragraphs(seed int64, n int) []byte {
	r := NewLoremReader(rand.NewSource(seed))
	var p []byte
	for i := 0; i < n; i++ {
		p = r.AppendParagraph(p)
	}
	return p
}
