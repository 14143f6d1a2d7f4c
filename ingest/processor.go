// Copyright 2025 Tofes AI
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package ingest

import "context"

// FileProcessor handles one input file end to end. Implementations must be
// safe for concurrent use: the pipeline calls Process from multiple workers.
//
// An error return means the file was not fully processed and the pipeline
// may call Process again with the same path, so implementations must be
// idempotent at the file level.
type FileProcessor interface {
	Process(ctx context.Context, path string) error
}
