package duckduckgo

import (
	"fmt"
	"strings"
)

const resultsPageHTML = `<!DOCTYPE html>
<html>
<head><title>Paris at DuckDuckGo</title></head>
<body>
<div id="links" class="results">
  <div class="result results_links results_links_deep result--ad">
    <div class="links_main links_deep result__body">
      <h2 class="result__title"><a class="result__a" href="https://ads.example.com/paris">Cheap Paris Hotels</a></h2>
      <a class="result__snippet" href="https://ads.example.com/paris">Sponsored.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title">
        <a rel="nofollow" class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fwww.toureiffel.paris%2Fen&amp;rut=abc">Official website of the <b>Eiffel</b> Tower</a>
      </h2>
      <div class="result__extras"><a class="result__url" href="https://www.toureiffel.paris/en">www.toureiffel.paris</a></div>
      <a class="result__snippet" href="https://www.toureiffel.paris/en">Book tickets for the
        <b>Eiffel</b> Tower, the icon of Paris.</a>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title"><a class="result__a" href="https://www.louvre.fr/en">Louvre Museum</a></h2>
    </div>
  </div>
  <div class="result results_links results_links_deep web-result">
    <div class="links_main links_deep result__body">
      <h2 class="result__title"><a class="result__a" href="https://en.parisinfo.com/">Paris tourist office</a></h2>
      <a class="result__snippet" href="https://en.parisinfo.com/">Top attractions, museums and monuments.</a>
    </div>
  </div>
</div>
</body>
</html>`

// manyResultsPage renders n organic results titled "Result 1".."Result n".
func manyResultsPage(n int) string {
	var sb strings.Builder
	sb.WriteString(`<html><body><div id="links">`)
	for i := 1; i <= n; i++ {
		fmt.Fprintf(&sb, `<div class="result web-result"><h2 class="result__title"><a class="result__a" href="https://example.com/%d">Result %d</a></h2><a class="result__snippet">Snippet %d</a></div>`, i, i, i)
	}
	sb.WriteString(`</div></body></html>`)
	return sb.String()
}
