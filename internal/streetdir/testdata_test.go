package streetdir

const resultsPage = `<html><body>
<div class="main_view_result">
  <div class="search_list">
    <div class="search_title"><a href="#">Jurong East Blk 288E</a></div>
    <div class="search_address"><div class="search_label">Address</div> : 288E Jurong East Street 21 (S)605288</div>
    <div class="category_row"><span class="search_label">Category</span>: HDB Blocks</div>
  </div>
  <div class="search_list">
    <div class="search_address"><div class="search_label">Address</div>: 288E Jurong East Street 21</div>
    <div class="category_row">Category : Multi Storey Car Park (MSCP)</div>
  </div>
  <div class="search_list">
    <div class="category_row">Category: Business dealing with Hardware</div>
  </div>
</div>
</body></html>`

const emptyPage = `<html><body><div class="main_view_result"><p>No results</p></div></body></html>`
