package board

import "testing"

func BenchmarkParse(b *testing.B) {
	expr := "--XXXXX--OOOXX-O-OOOXXOX-OXOXOXXOXXXOXXX--XOXOXX-XXXOOO--OOOOO--"
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		MustParse(expr)
	}
}

func BenchmarkSquares(b *testing.B) {
	pos := Standard()
	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Squares(pos.Empties())
	}
}
