package hotelsite

import (
	"io/fs"

	"github.com/goliatone/go-hotelsite/pkg/renderers/vanilla"
)

// RuntimeAssetsFS exposes the site stylesheet and the browser script that
// polls the toast endpoint and runs blur validation.
//
// Typical mount:
//
//	mux.Handle("GET /assets/",
//	  http.StripPrefix("/assets/",
//	    http.FileServerFS(hotelsite.RuntimeAssetsFS()),
//	  ),
//	)
func RuntimeAssetsFS() fs.FS {
	return vanilla.AssetsFS()
}
