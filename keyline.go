package camio

import "github.com/sandialabs/camio/entity"

// assignKeyLines chooses exactly one key line per nuclide from the
// globally sorted lines list, per §4.8: for each nuclide, score its
// lines by energy/1000 + abundance/10, take the top scorer, then
// fall back to the previous-best if the top scorer's immediate global
// neighbors are within limitKeV of it (and the nuclide has more than
// one line) — interference detection, not a per-candidate check.
func assignKeyLines(lines []entity.Line, limitKeV float32) {
	nuclideIndices := map[uint8]bool{}
	for _, l := range lines {
		nuclideIndices[l.NuclideIndex] = true
	}

	for nucIdx := range nuclideIndices {
		var (
			bestScore      float32 = -1
			bestIndex      = -1
			lastBestIndex  = -1
			numLinesForNuc = 0
		)

		for i, l := range lines {
			if l.NuclideIndex != nucIdx {
				continue
			}
			numLinesForNuc++

			score := l.Energy/1000 + l.Abundance/10
			if score > bestScore {
				bestScore = score
				lastBestIndex = bestIndex
				bestIndex = i
			}
		}

		if bestIndex < 0 {
			continue
		}

		if numLinesForNuc > 1 && bestIndex > 0 && bestIndex < len(lines)-1 {
			lowerE := lines[bestIndex-1].Energy
			higherE := lines[bestIndex+1].Energy
			scoreE := lines[bestIndex].Energy
			if lowerE >= scoreE-limitKeV || higherE <= scoreE+limitKeV {
				if lastBestIndex >= 0 {
					bestIndex = lastBestIndex
				}
			}
		}

		lines[bestIndex].IsKeyLine = true
	}
}
