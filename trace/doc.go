// Copyright (c) Peter Newcomb. All rights reserved.
// Licensed under the MIT License.

// Package trace turns batch task records of a cluster trace into task graphs.
//
// Records follow the batch_task table of the Alibaba cluster trace:
//
//	task_name,instance_num,job_name,task_type,status,start_time,end_time[,...]
//
// A task name such as "R5_3_4" declares task 5 depending on tasks 3 and 4 of
// the same job. Names not in that form, such as "task_Nzg3ODAwNDgzMTAwNTc2NTQ1Mg=="
// or "MergeTask", are independent tasks.
package trace
