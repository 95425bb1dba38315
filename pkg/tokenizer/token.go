package tokenizer

type Token struct {
	//byte offset of the first byte of the term
	Start int
	//byte offset just past the term
	End int
	//the term text, a substring of the input
	Term string
	//1-based position among emitted tokens
	Position int
}

type Tokens []Token

func (ts Tokens) Terms() []string {
	out := make([]string, len(ts))
	for i := range ts {
		out[i] = ts[i].Term
	}
	return out
}
