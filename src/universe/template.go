package universe

//Template represents a seeding template which can be used to settle
//the universe with a predefined pattern
type Template struct {
	Name        string  //template name
	Descr       string  //template description
	Coordinates [][]int //array of [x,y] coordinates
}

//BuiltinTemplates returns the patterns registered on every engine
func BuiltinTemplates() []Template {
	return []Template{
		{
			Name:        "blinker",
			Descr:       "period-2 oscillator, a line of 3 cells",
			Coordinates: [][]int{{2, 1}, {2, 2}, {2, 3}},
		},
		{
			Name:        "glider",
			Descr:       "the smallest spaceship, travels diagonally",
			Coordinates: [][]int{{1, 0}, {2, 1}, {0, 2}, {1, 2}, {2, 2}},
		},
		{
			Name:  "trio",
			Descr: "sample settling into 3 stable patterns",
			Coordinates: [][]int{
				{1, 1}, {1, 2},
				{2, 1}, {2, 2},
				{3, 3},
				{4, 2},
				{4, 3},
				{5, 3},
			},
		},
	}
}
