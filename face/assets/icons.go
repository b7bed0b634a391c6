package assets

// Icon art: '#' is ink, anything else paper. Rows must all be the icon width.
var (
	artBatteryFull = [...]string{
		"................",
		"................",
		"................",
		"..###########...",
		"..#.........#...",
		"..#.#######.##..",
		"..#.#######..#..",
		"..#.#######..#..",
		"..#.#######..#..",
		"..#.#######..#..",
		"..#.#######.##..",
		"..#.........#...",
		"..###########...",
		"................",
		"................",
		"................",
	}
	artBatteryHalf = [...]string{
		"................",
		"................",
		"................",
		"..###########...",
		"..#.........#...",
		"..#.####....##..",
		"..#.####.....#..",
		"..#.####.....#..",
		"..#.####.....#..",
		"..#.####.....#..",
		"..#.####....##..",
		"..#.........#...",
		"..###########...",
		"................",
		"................",
		"................",
	}
	artBatteryLow = [...]string{
		"................",
		"................",
		"................",
		"..###########...",
		"..#.........#...",
		"..#.#.......##..",
		"..#.#........#..",
		"..#.#........#..",
		"..#.#........#..",
		"..#.#........#..",
		"..#.#.......##..",
		"..#.........#...",
		"..###########...",
		"................",
		"................",
		"................",
	}
	artBatteryCharge = [...]string{
		"................",
		"................",
		"................",
		"..###########...",
		"..#.....#...#...",
		"..#....##...##..",
		"..#...###....#..",
		"..#..#######.#..",
		"..#.#######..#..",
		"..#....###...#..",
		"..#....##...##..",
		"..#....#....#...",
		"..###########...",
		"................",
		"................",
		"................",
	}
	artBTConnect = [...]string{
		"....................",
		"....................",
		".........#..........",
		".........##.........",
		".........###........",
		".........#.##.......",
		"....##...#..##......",
		".....##..#..##......",
		"......##.#.##.......",
		".......#####........",
		"........###.........",
		".......#####........",
		"......##.#.##.......",
		".....##..#..##......",
		"....##...#..##......",
		".........#.##.......",
		".........###........",
		".........##.........",
		".........#..........",
		"....................",
	}
	artBTDisconnect = [...]string{
		"....................",
		"....................",
		".........#..........",
		".........##.........",
		".........###........",
		".........#.##.......",
		"##...##..#..##...##.",
		".##...##.#..##..##..",
		"..##...###.##..##...",
		"...##..####...##....",
		"....##.###...##.....",
		"...##..####...##....",
		"..##..##.#.##..##...",
		".##..##..#..##..##..",
		"##..##...#..##...##.",
		".........#.##.......",
		".........###........",
		".........##.........",
		".........#..........",
		"....................",
	}
)
